package httpx

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/project"
	"github.com/Dinesh02121/project-portal/internal/domain/review"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

func TestReview_ListFiles(t *testing.T) {
	g := newGateway(t)
	g.files.EXPECT().ListFiles(gomock.Any(), credFor(facultyToken), domainauth.RoleFaculty, "p1", "src/main").Return([]review.FileEntry{
		{Name: "app.go"},
		{Name: "util", IsDirectory: true},
	}, nil)

	rec := g.do(t, http.MethodGet, "/faculty/projects/p1/files?path=src/main/", facultyToken, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "src/main", body["path"])
	assert.Equal(t, "src", body["parent"])
	assert.Equal(t, false, body["at_root"])
	entries, ok := body["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 2)
	first, ok := entries[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "src/main/app.go", first["path"])
}

func TestReview_StudentsCannotBrowse(t *testing.T) {
	g := newGateway(t)

	rec := g.do(t, http.MethodGet, "/faculty/projects/p1/files", studentToken, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReview_PathEscapeRejected(t *testing.T) {
	g := newGateway(t)

	rec := g.do(t, http.MethodGet, "/faculty/projects/p1/file/content?path=../../etc/passwd", facultyToken, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "path", decodeBody(t, rec)["field"])
}

func TestReview_FileContent(t *testing.T) {
	g := newGateway(t)
	g.files.EXPECT().FileContent(gomock.Any(), credFor(collegeToken), domainauth.RoleCollegeAdmin, "p1", "README.md").
		Return(review.FileContent{Content: "# hello"}, nil)

	rec := g.do(t, http.MethodGet, "/faculty/projects/p1/file/content?path=README.md", collegeToken, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "README.md", body["path"])
	assert.Equal(t, "# hello", body["content"])
}

func TestReview_Download(t *testing.T) {
	g := newGateway(t)
	g.files.EXPECT().DownloadFile(gomock.Any(), credFor(facultyToken), domainauth.RoleFaculty, "p1", "bin/report.pdf").
		Return(ports.Blob{
			Body:        io.NopCloser(strings.NewReader("%PDF-1.7")),
			ContentType: "application/pdf",
			Size:        8,
		}, nil)

	rec := g.do(t, http.MethodGet, "/faculty/projects/p1/file/download?path=bin/report.pdf", facultyToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=report.pdf`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "8", rec.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF-1.7", rec.Body.String())
}

func TestReview_DownloadDirectoryRejected(t *testing.T) {
	g := newGateway(t)

	rec := g.do(t, http.MethodGet, "/faculty/projects/p1/file/download?path=src/", facultyToken, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReview_Analyze(t *testing.T) {
	g := newGateway(t)
	g.oracle.EXPECT().Analyze(gomock.Any(), credFor(facultyToken), "p1").
		Return(json.RawMessage(`{
				"overall_grade": "A-",
				"code_quality_score": 8.5,
				"detected_tech_stack": {"backend": ["Go"], "frontend": ["React"]},
				"strengths": ["tests"],
				"weaknesses": [],
				"recommendations": ["add CI"]
			}`), nil)

	rec := g.do(t, http.MethodPost, "/faculty/projects/p1/ai-analysis", facultyToken, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report review.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "A-", report.OverallGrade)
	assert.InDelta(t, 8.5, report.CodeQualityScore, 0.001)
	assert.Equal(t, []string{"Go", "React"}, report.DetectedTechStack)
	assert.Equal(t, []string{"add CI"}, report.Recommendations)
}

func TestReview_StudentBrowsesOwnProject(t *testing.T) {
	g := newGateway(t)
	cred := credFor(studentToken)
	g.backend.EXPECT().GetProject(gomock.Any(), cred, domainauth.RoleStudent, "p1").
		Return(project.Project{ID: "p1", OwnerID: "user-stu", Status: project.StatusPending}, nil)
	g.files.EXPECT().ListFiles(gomock.Any(), cred, domainauth.RoleStudent, "p1", "").
		Return([]review.FileEntry{{Name: "README.md"}}, nil)

	rec := g.do(t, http.MethodGet, "/student/projects/p1/files", studentToken, "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decodeBody(t, rec)["at_root"])
}

func TestReview_StudentCannotBrowseOthersProject(t *testing.T) {
	g := newGateway(t)
	g.backend.EXPECT().GetProject(gomock.Any(), credFor(studentToken), domainauth.RoleStudent, "p9").
		Return(project.Project{}, apperrors.NotFoundf("project p9 not found"))

	rec := g.do(t, http.MethodGet, "/student/projects/p9/file/content?path=README.md", studentToken, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReview_FacultyUsesReviewerFileRoutes(t *testing.T) {
	g := newGateway(t)

	rec := g.do(t, http.MethodGet, "/student/projects/p1/files", facultyToken, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
