package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/project"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
)

const (
	studentPrefix   = "/student/dashboard"
	facultyPrefix   = "/faculty/dashboard/project/"
	facultyRequests = "/faculty/dashboard/requests"
	collegePrefix   = "/college/projects/"
	collegeList     = "/college/projects"
)

func facultyPath(id, suffix string) string {
	return facultyPrefix + url.PathEscape(id) + suffix
}

func collegePath(id, suffix string) string {
	return collegePrefix + url.PathEscape(id) + suffix
}

func acceptQuery(accept bool) url.Values {
	return url.Values{"accept": []string{strconv.FormatBool(accept)}}
}

// CreateProject submits draft as the multipart "data" part, with the archive
// as the "file" part when present.
func (c *Client) CreateProject(ctx context.Context, cred domainauth.Credential, draft project.Draft, archive *project.Archive) (project.Project, error) {
	data, err := json.Marshal(draftToWire(draft))
	if err != nil {
		return project.Project{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode project draft")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeSubmission(mw, data, archive))
	}()

	resp, err := c.do(ctx, request{
		op:          "create project",
		method:      http.MethodPost,
		path:        studentPrefix + "/project",
		body:        pr,
		contentType: mw.FormDataContentType(),
		cred:        &cred,
	})
	_ = pr.Close()
	if err != nil {
		return project.Project{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return project.Project{}, apperrors.FromTransport(err, "create project")
	}
	out, err := decodeCreated(b)
	if err != nil {
		return project.Project{}, err
	}
	if out.ProjectID == "" && out.ID == "" {
		c.logger.DebugContext(ctx, "create project answered without a project", "body_bytes", len(b))
	}

	p := out.toDomain()
	if p.Status == "" {
		p.Status = project.StatusPending
	}
	if p.Title == "" {
		p.Title, p.Description = draft.Title, draft.Description
		p.CollegeID, p.FacultyID = draft.CollegeID, draft.FacultyID
	}
	return p, nil
}

// decodeCreated reads the create response. Older backends answer with a bare
// success message instead of the project; that yields an empty wire value.
// A JSON object that does not decode is an error.
func decodeCreated(b []byte) (projectWire, error) {
	var out projectWire
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return out, nil
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return projectWire{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode created project")
	}
	return out, nil
}

func writeSubmission(mw *multipart.Writer, data []byte, archive *project.Archive) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="data"`)
	h.Set("Content-Type", "application/json")
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, bytes.NewReader(data)); err != nil {
		return err
	}
	if archive != nil && archive.Body != nil {
		name := archive.Filename
		if name == "" {
			name = "project.zip"
		}
		fw, err := mw.CreateFormFile("file", name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(fw, archive.Body); err != nil {
			return err
		}
	}
	return mw.Close()
}

// listPath picks the listing endpoint for role. Students see their own
// submissions, faculty their review requests, administrators the college view.
func listPath(role domainauth.Role) (string, error) {
	switch role {
	case domainauth.RoleStudent:
		return studentPrefix + "/projects", nil
	case domainauth.RoleFaculty:
		return facultyRequests, nil
	case domainauth.RoleCollegeAdmin, domainauth.RoleSystemAdmin:
		return collegeList, nil
	default:
		return "", apperrors.Authorizationf("role %q has no project listing", role)
	}
}

// ListProjects returns the projects visible to a caller holding role.
func (c *Client) ListProjects(ctx context.Context, cred domainauth.Credential, role domainauth.Role) ([]project.Project, error) {
	p, err := listPath(role)
	if err != nil {
		return nil, err
	}
	var out []projectWire
	if err := c.call(ctx, request{op: "list projects", method: http.MethodGet, path: p, cred: &cred}, &out); err != nil {
		return nil, err
	}
	projects := make([]project.Project, 0, len(out))
	for _, w := range out {
		projects = append(projects, w.toDomain())
	}
	return projects, nil
}

// GetProject loads one project's details. Students have no details endpoint;
// their project is read from their own listing, so a project they do not own
// is reported as not found.
func (c *Client) GetProject(ctx context.Context, cred domainauth.Credential, role domainauth.Role, id string) (project.Project, error) {
	if role == domainauth.RoleStudent {
		return c.ownProject(ctx, cred, id)
	}
	var out projectWire
	if err := c.call(ctx, request{op: "get project", method: http.MethodGet, path: facultyPath(id, "/details"), cred: &cred}, &out); err != nil {
		return project.Project{}, err
	}
	p := out.toDomain()
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

func (c *Client) ownProject(ctx context.Context, cred domainauth.Credential, id string) (project.Project, error) {
	projects, err := c.ListProjects(ctx, cred, domainauth.RoleStudent)
	if err != nil {
		return project.Project{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return project.Project{}, apperrors.NotFoundf("project %s not found among your submissions", id)
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, cred domainauth.Credential, id string) error {
	return c.call(ctx, request{
		op:     "delete project",
		method: http.MethodDelete,
		path:   studentPrefix + "/delete-project/" + url.PathEscape(id),
		cred:   &cred,
	}, nil)
}

// Decide records a faculty accept/reject decision.
func (c *Client) Decide(ctx context.Context, cred domainauth.Credential, id string, accept bool) error {
	return c.call(ctx, request{
		op:     "decide",
		method: http.MethodPut,
		path:   facultyPath(id, "/decision"),
		query:  acceptQuery(accept),
		cred:   &cred,
	}, nil)
}

// UpdateProgress posts the new progress percentage.
func (c *Client) UpdateProgress(ctx context.Context, cred domainauth.Credential, id string, progress int) error {
	body, err := jsonBody(progressRequest{Progress: progress})
	if err != nil {
		return err
	}
	return c.call(ctx, request{
		op:          "update progress",
		method:      http.MethodPost,
		path:        facultyPath(id, "/progress"),
		body:        body,
		contentType: "application/json",
		cred:        &cred,
	}, nil)
}

// Finalize records the final verdict on an in-progress project.
func (c *Client) Finalize(ctx context.Context, cred domainauth.Credential, id string, accept bool) error {
	return c.call(ctx, request{
		op:     "finalize",
		method: http.MethodPut,
		path:   facultyPath(id, "/finalize"),
		query:  acceptQuery(accept),
		cred:   &cred,
	}, nil)
}

// Start begins work on an approved project.
func (c *Client) Start(ctx context.Context, cred domainauth.Credential, id string) error {
	return c.call(ctx, request{op: "start", method: http.MethodPut, path: facultyPath(id, "/start"), cred: &cred}, nil)
}

// Approve marks a pending project approved by the college.
func (c *Client) Approve(ctx context.Context, cred domainauth.Credential, id string) error {
	return c.call(ctx, request{op: "approve", method: http.MethodPut, path: collegePath(id, "/approve"), cred: &cred}, nil)
}

// RequestFaculty asks the assigned faculty member to review a pending project.
func (c *Client) RequestFaculty(ctx context.Context, cred domainauth.Credential, id string) error {
	return c.call(ctx, request{op: "request faculty", method: http.MethodPut, path: collegePath(id, "/request-faculty"), cred: &cred}, nil)
}
