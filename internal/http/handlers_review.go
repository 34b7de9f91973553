package httpx

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/Dinesh02121/project-portal/internal/service"
)

// ReviewHandlers serves the file navigator and the analysis report.
type ReviewHandlers struct {
	Files    *service.FileNavigator
	Analysis *service.AnalysisService
	Errors   *ErrorRenderer
	Logger   *slog.Logger
}

func (h *ReviewHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// ListFiles returns one directory of the project archive.
// GET /{faculty,student}/projects/{id}/files?path=.
func (h *ReviewHandlers) ListFiles(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	listing, err := h.Files.List(r.Context(), caller, r.PathValue("id"), r.URL.Query().Get("path"))
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, listing)
}

// FileContent returns a file's text.
// GET /{faculty,student}/projects/{id}/file/content?path=.
func (h *ReviewHandlers) FileContent(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	content, err := h.Files.Content(r.Context(), caller, r.PathValue("id"), r.URL.Query().Get("path"))
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, content)
}

// Download streams a file as an attachment.
// GET /{faculty,student}/projects/{id}/file/download?path=.
func (h *ReviewHandlers) Download(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	blob, err := h.Files.Download(r.Context(), caller, r.PathValue("id"), r.URL.Query().Get("path"))
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	defer func() { _ = blob.Body.Close() }()

	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": blob.Filename}))
	if blob.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger().DebugContext(r.Context(), "download interrupted", "error", err)
	}
}

// Analyze requests the code analysis report.
// POST /faculty/projects/{id}/ai-analysis.
func (h *ReviewHandlers) Analyze(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	report, err := h.Analysis.Analyze(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}
