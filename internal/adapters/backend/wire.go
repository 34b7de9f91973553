package backend

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Dinesh02121/project-portal/internal/domain/project"
	"github.com/Dinesh02121/project-portal/internal/domain/review"
)

// flexID accepts identifiers encoded either as JSON numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func firstID(ids ...flexID) string {
	for _, id := range ids {
		if id != "" {
			return string(id)
		}
	}
	return ""
}

type verifyResponse struct {
	Role   string `json:"role"`
	Email  string `json:"email"`
	UserID flexID `json:"userId"`
	ID     flexID `json:"id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type projectWire struct {
	ProjectID   flexID `json:"projectId"`
	ID          flexID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StudentID   flexID `json:"studentId"`
	CreatedBy   flexID `json:"createdBy"`
	CollegeID   flexID `json:"collegeId"`
	FacultyID   flexID `json:"facultyId"`
	FacultyName string `json:"facultyName"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	SubmittedAt string `json:"submittedAt"`
}

func (w projectWire) toDomain() project.Project {
	status, ok := project.ParseStatus(w.Status)
	if !ok {
		status = project.Status(strings.ToUpper(strings.TrimSpace(w.Status)))
	}
	return project.Project{
		ID:          firstID(w.ProjectID, w.ID),
		Title:       w.Title,
		Description: w.Description,
		OwnerID:     firstID(w.StudentID, w.CreatedBy),
		CollegeID:   string(w.CollegeID),
		FacultyID:   string(w.FacultyID),
		FacultyName: w.FacultyName,
		Status:      status,
		Progress:    w.Progress,
		SubmittedAt: parseTime(w.SubmittedAt),
	}
}

// parseTime accepts RFC 3339 and the zone-less local form the backend emits.
func parseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// draftWire is the "data" part of a project submission.
type draftWire struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	CollegeID     any    `json:"collegeId"`
	FacultyID     any    `json:"facultyId"`
	TechStack     string `json:"techStack,omitempty"`
	RepositoryURL string `json:"repositoryUrl,omitempty"`
}

// numericOrString sends numeric identifiers as JSON numbers.
func numericOrString(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

func draftToWire(d project.Draft) draftWire {
	return draftWire{
		Title:         d.Title,
		Description:   d.Description,
		CollegeID:     numericOrString(d.CollegeID),
		FacultyID:     numericOrString(d.FacultyID),
		TechStack:     d.TechStack,
		RepositoryURL: d.RepositoryURL,
	}
}

type fileWire struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	IsDirectory bool   `json:"isDirectory"`
	Directory   bool   `json:"directory"`
	Size        int64  `json:"size"`
}

func (w fileWire) toDomain() review.FileEntry {
	return review.FileEntry{
		Name:        w.Name,
		Path:        w.Path,
		IsDirectory: w.IsDirectory || w.Directory,
		Size:        w.Size,
	}
}

type progressRequest struct {
	Progress int `json:"progress"`
}
