package backend

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/review"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// maxFileContent bounds the text content fetched for the review viewer.
const maxFileContent = 5 << 20

func pathQuery(p string) url.Values {
	if p == "" {
		return nil
	}
	return url.Values{"path": []string{p}}
}

// archivePath addresses a project archive. Students read their own archive
// under the student dashboard; every reviewing role uses the faculty path.
func archivePath(role domainauth.Role, projectID, suffix string) string {
	if role == domainauth.RoleStudent {
		return studentPrefix + "/project/" + url.PathEscape(projectID) + suffix
	}
	return facultyPath(projectID, suffix)
}

// ListFiles lists one directory of the project archive.
func (c *Client) ListFiles(ctx context.Context, cred domainauth.Credential, role domainauth.Role, projectID, path string) ([]review.FileEntry, error) {
	var out []fileWire
	err := c.call(ctx, request{
		op:     "list files",
		method: http.MethodGet,
		path:   archivePath(role, projectID, "/files"),
		query:  pathQuery(path),
		cred:   &cred,
	}, &out)
	if err != nil {
		return nil, err
	}
	entries := make([]review.FileEntry, 0, len(out))
	for _, w := range out {
		entries = append(entries, w.toDomain())
	}
	return entries, nil
}

// FileContent fetches a file as text.
func (c *Client) FileContent(ctx context.Context, cred domainauth.Credential, role domainauth.Role, projectID, path string) (review.FileContent, error) {
	resp, err := c.do(ctx, request{
		op:     "file content",
		method: http.MethodGet,
		path:   archivePath(role, projectID, "/file/content"),
		query:  pathQuery(path),
		cred:   &cred,
	})
	if err != nil {
		return review.FileContent{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxFileContent))
	if err != nil {
		return review.FileContent{}, apperrors.FromTransport(err, "file content")
	}
	return review.FileContent{Path: path, Content: string(b)}, nil
}

// DownloadFile streams a file. The returned body must be closed by the caller.
func (c *Client) DownloadFile(ctx context.Context, cred domainauth.Credential, role domainauth.Role, projectID, path string) (ports.Blob, error) {
	resp, err := c.do(ctx, request{
		op:     "file download",
		method: http.MethodGet,
		path:   archivePath(role, projectID, "/file/download"),
		query:  pathQuery(path),
		cred:   &cred,
		stream: true,
	})
	if err != nil {
		return ports.Blob{}, err
	}
	blob := ports.Blob{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		blob.Filename = params["filename"]
	}
	return blob, nil
}

// Analyze posts to the analysis endpoint and returns its JSON untouched.
func (c *Client) Analyze(ctx context.Context, cred domainauth.Credential, projectID string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.call(ctx, request{
		op:     "ai analysis",
		method: http.MethodPost,
		path:   facultyPath(projectID, "/ai-analysis"),
		cred:   &cred,
		stream: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
