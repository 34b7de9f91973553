package ports

import (
	"context"
	"encoding/json"
	"io"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/project"
	"github.com/Dinesh02121/project-portal/internal/domain/review"
)

// ProjectBackend issues lifecycle commands to the system of record. Every call
// is authenticated with the caller's credential; the backend re-checks roles.
// Reads take the caller's verified role because each role has its own view
// of the project list.
type ProjectBackend interface {
	CreateProject(ctx context.Context, cred domainauth.Credential, draft project.Draft, archive *project.Archive) (project.Project, error)
	ListProjects(ctx context.Context, cred domainauth.Credential, role domainauth.Role) ([]project.Project, error)
	GetProject(ctx context.Context, cred domainauth.Credential, role domainauth.Role, id string) (project.Project, error)
	DeleteProject(ctx context.Context, cred domainauth.Credential, id string) error

	Decide(ctx context.Context, cred domainauth.Credential, id string, accept bool) error
	UpdateProgress(ctx context.Context, cred domainauth.Credential, id string, progress int) error
	Finalize(ctx context.Context, cred domainauth.Credential, id string, accept bool) error
	Start(ctx context.Context, cred domainauth.Credential, id string) error
	Approve(ctx context.Context, cred domainauth.Credential, id string) error
	RequestFaculty(ctx context.Context, cred domainauth.Credential, id string) error
}

// Blob is an opaque file download. Callers must close Body.
type Blob struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
	Size        int64
}

// FileStore is the project storage service as seen by the file viewer.
// Students read their own archives through a separate path from reviewers.
type FileStore interface {
	ListFiles(ctx context.Context, cred domainauth.Credential, role domainauth.Role, projectID, path string) ([]review.FileEntry, error)
	FileContent(ctx context.Context, cred domainauth.Credential, role domainauth.Role, projectID, path string) (review.FileContent, error)
	DownloadFile(ctx context.Context, cred domainauth.Credential, role domainauth.Role, projectID, path string) (Blob, error)
}

// AnalysisOracle returns the raw JSON report of the code analysis service.
type AnalysisOracle interface {
	Analyze(ctx context.Context, cred domainauth.Credential, projectID string) (json.RawMessage, error)
}
