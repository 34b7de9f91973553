package service

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/review"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// reviewRoles may browse any assigned project's files and request its
// analysis. Students may browse only their own submissions.
var reviewRoles = domainauth.NewRoleSet(
	domainauth.RoleFaculty,
	domainauth.RoleCollegeAdmin,
	domainauth.RoleSystemAdmin,
)

// FileNavigatorOptions groups dependencies for FileNavigator. Projects is
// used to confirm a student owns the project; without it students are
// refused.
type FileNavigatorOptions struct {
	Store    ports.FileStore
	Projects ports.ProjectBackend
	Timeout  time.Duration
	Logger   *slog.Logger
}

// FileNavigator browses the files of a submitted project. It holds no state
// between calls.
type FileNavigator struct {
	store    ports.FileStore
	projects ports.ProjectBackend
	timeout  time.Duration
	logger   *slog.Logger
}

// NewFileNavigator constructs a FileNavigator.
func NewFileNavigator(opts FileNavigatorOptions) *FileNavigator {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FileNavigator{
		store:    opts.Store,
		projects: opts.Projects,
		timeout:  timeout,
		logger:   logger.With("component", "file_navigator"),
	}
}

// Listing is one directory of a project archive.
type Listing struct {
	Path    string             `json:"path"`
	Parent  string             `json:"parent"`
	AtRoot  bool               `json:"at_root"`
	Entries []review.FileEntry `json:"entries"`
}

// List returns the entries of the directory at rawPath ("" is the root).
func (n *FileNavigator) List(ctx context.Context, caller Caller, projectID, rawPath string) (Listing, error) {
	callCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	dir, err := n.prepare(callCtx, caller, projectID, rawPath)
	if err != nil {
		return Listing{}, timeoutAsTransient(callCtx, err, "list files")
	}
	entries, err := n.store.ListFiles(callCtx, caller.Credential, caller.Identity.Role, projectID, dir)
	if err != nil {
		return Listing{}, timeoutAsTransient(callCtx, err, "list files")
	}
	for i := range entries {
		if entries[i].Path == "" {
			entries[i].Path = path.Join(dir, entries[i].Name)
		}
	}
	return Listing{Path: dir, Parent: review.ParentPath(dir), AtRoot: dir == "", Entries: entries}, nil
}

// Content returns a file's text.
func (n *FileNavigator) Content(ctx context.Context, caller Caller, projectID, rawPath string) (review.FileContent, error) {
	callCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	file, err := n.prepareFile(callCtx, caller, projectID, rawPath)
	if err != nil {
		return review.FileContent{}, timeoutAsTransient(callCtx, err, "file content")
	}
	content, err := n.store.FileContent(callCtx, caller.Credential, caller.Identity.Role, projectID, file)
	if err != nil {
		return review.FileContent{}, timeoutAsTransient(callCtx, err, "file content")
	}
	content.Path = file
	return content, nil
}

// Download streams a file. The caller must close the returned body; the
// transfer is bounded by ctx only.
func (n *FileNavigator) Download(ctx context.Context, caller Caller, projectID, rawPath string) (ports.Blob, error) {
	file, err := n.admitFile(ctx, caller, projectID, rawPath)
	if err != nil {
		return ports.Blob{}, err
	}
	blob, err := n.store.DownloadFile(ctx, caller.Credential, caller.Identity.Role, projectID, file)
	if err != nil {
		return ports.Blob{}, err
	}
	if blob.Filename == "" {
		blob.Filename = path.Base(file)
	}
	n.logger.Debug("file download started", "project_id", projectID, "path", file)
	return blob, nil
}

func (n *FileNavigator) prepare(ctx context.Context, caller Caller, projectID, rawPath string) (string, error) {
	role := caller.Identity.Role
	if !reviewRoles.Contains(role) && role != domainauth.RoleStudent {
		return "", apperrors.Authorizationf("role %q may not browse project files", role)
	}
	if err := validProjectID(projectID); err != nil {
		return "", err
	}
	clean, err := review.CleanPath(rawPath)
	if err != nil {
		return "", err
	}
	if role == domainauth.RoleStudent {
		if err := n.checkOwner(ctx, caller, projectID); err != nil {
			return "", err
		}
	}
	return clean, nil
}

// checkOwner admits a student only to a project in their own listing.
func (n *FileNavigator) checkOwner(ctx context.Context, caller Caller, projectID string) error {
	if n.projects == nil {
		return apperrors.Authorizationf("students may not browse project files")
	}
	p, err := n.projects.GetProject(ctx, caller.Credential, domainauth.RoleStudent, projectID)
	switch {
	case apperrors.IsNotFound(err):
		return apperrors.Authorizationf("project %s is not owned by the caller", projectID)
	case err != nil:
		return err
	case p.OwnerID != "" && p.OwnerID != caller.Identity.Subject:
		return apperrors.Authorizationf("project %s is not owned by the caller", projectID)
	}
	return nil
}

// admitFile runs prepareFile under the command timeout, leaving ctx free to
// bound the transfer that follows.
func (n *FileNavigator) admitFile(ctx context.Context, caller Caller, projectID, rawPath string) (string, error) {
	checkCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	file, err := n.prepareFile(checkCtx, caller, projectID, rawPath)
	if err != nil {
		return "", timeoutAsTransient(checkCtx, err, "file download")
	}
	return file, nil
}

// prepareFile additionally rejects the root and directory-style paths.
func (n *FileNavigator) prepareFile(ctx context.Context, caller Caller, projectID, rawPath string) (string, error) {
	file, err := n.prepare(ctx, caller, projectID, rawPath)
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(rawPath)
	if file == "" || strings.HasSuffix(trimmed, "/") || strings.HasSuffix(trimmed, "\\") {
		return "", apperrors.ValidationField("path", "a directory cannot be opened as a file")
	}
	return file, nil
}
