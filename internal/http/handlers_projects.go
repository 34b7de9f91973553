package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/Dinesh02121/project-portal/internal/domain/project"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/service"
)

// multipartMemory is the in-memory share of a parsed submission; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// submissionOverhead allows for the draft part and multipart framing.
const submissionOverhead = 1 << 20

// ProjectHandlers serves the project lifecycle commands.
type ProjectHandlers struct {
	Svc    *service.LifecycleService
	Errors *ErrorRenderer
	Logger *slog.Logger
}

func (h *ProjectHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// callerOrFail fetches the verified caller placed by the guard.
func callerOrFail(w http.ResponseWriter, r *http.Request, errs *ErrorRenderer) (service.Caller, bool) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		errs.Render(w, r, apperrors.Authentication("not verified"))
		return service.Caller{}, false
	}
	return caller, true
}

// List returns the caller's projects.
// GET /student/projects.
func (h *ProjectHandlers) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	projects, err := h.Svc.List(r.Context(), caller)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	if projects == nil {
		projects = []project.Project{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// ReviewQueue returns the faculty member's projects awaiting a decision.
// GET /faculty/requests.
func (h *ProjectHandlers) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	queue, err := h.Svc.ReviewQueue(r.Context(), caller)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"projects": queue})
}

// Submit creates a project from a JSON draft, or from a multipart form with
// the draft in the "data" part and an optional "file" archive.
// POST /student/projects.
func (h *ProjectHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var draft project.Draft
		if !DecodeJSON(w, r, &draft) {
			return
		}
		h.submit(w, r, caller, draft, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, project.MaxArchiveBytes+submissionOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, ErrorParams{Code: http.StatusRequestEntityTooLarge, ErrCode: "archive_too_large", Err: err})
			return
		}
		h.Errors.Render(w, r, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid multipart submission"))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger().Debug("remove multipart temp files", "error", err)
		}
	}()

	var draft project.Draft
	if err := json.Unmarshal([]byte(r.FormValue("data")), &draft); err != nil {
		h.Errors.Render(w, r, apperrors.ValidationField("data", "data must be a JSON project draft"))
		return
	}

	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		h.submit(w, r, caller, draft, nil)
	case err != nil:
		h.Errors.Render(w, r, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid archive"))
	default:
		defer func() { _ = file.Close() }()
		h.submit(w, r, caller, draft, &project.Archive{Filename: header.Filename, Body: file})
	}
}

func (h *ProjectHandlers) submit(w http.ResponseWriter, r *http.Request, caller service.Caller, draft project.Draft, archive *project.Archive) {
	p, err := h.Svc.Submit(r.Context(), caller, draft, archive)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

// Delete removes a project.
// DELETE /student/projects/{id}, DELETE /college/projects/{id}.
func (h *ProjectHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), caller, r.PathValue("id")); err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Get returns one project.
// GET /faculty/projects/{id}.
func (h *ProjectHandlers) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	p, err := h.Svc.Get(r.Context(), caller, r.PathValue("id"))
	h.respond(w, r, p, err)
}

// Decide records a faculty decision.
// PUT /faculty/projects/{id}/decision?accept=bool.
func (h *ProjectHandlers) Decide(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	outcome, err := outcomeQuery(r)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	p, err := h.Svc.Decide(r.Context(), caller, r.PathValue("id"), outcome)
	h.respond(w, r, p, err)
}

type progressRequest struct {
	Progress *int `json:"progress"`
}

// Progress sets a project's progress.
// POST /faculty/projects/{id}/progress {"progress": int}.
func (h *ProjectHandlers) Progress(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	var req progressRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Progress == nil {
		h.Errors.Render(w, r, apperrors.ValidationField("progress", "progress is required"))
		return
	}
	p, err := h.Svc.UpdateProgress(r.Context(), caller, r.PathValue("id"), *req.Progress)
	h.respond(w, r, p, err)
}

// Finalize closes an in-progress project.
// PUT /faculty/projects/{id}/finalize?accept=bool.
func (h *ProjectHandlers) Finalize(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	outcome, err := outcomeQuery(r)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	p, err := h.Svc.Finalize(r.Context(), caller, r.PathValue("id"), outcome)
	h.respond(w, r, p, err)
}

// Start begins work on an approved project.
// PUT /faculty/projects/{id}/start.
func (h *ProjectHandlers) Start(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	p, err := h.Svc.Start(r.Context(), caller, r.PathValue("id"))
	h.respond(w, r, p, err)
}

// Approve records the college's approval.
// PUT /college/projects/{id}/approve.
func (h *ProjectHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	p, err := h.Svc.Approve(r.Context(), caller, r.PathValue("id"))
	h.respond(w, r, p, err)
}

// RequestFaculty asks the assigned faculty member to review a project.
// PUT /college/projects/{id}/request-faculty.
func (h *ProjectHandlers) RequestFaculty(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	p, err := h.Svc.RequestFaculty(r.Context(), caller, r.PathValue("id"))
	h.respond(w, r, p, err)
}

func (h *ProjectHandlers) respond(w http.ResponseWriter, r *http.Request, p project.Project, err error) {
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// outcomeQuery reads ?accept=true|false, or ?outcome=ACCEPT|REJECT.
func outcomeQuery(r *http.Request) (project.Outcome, error) {
	q := r.URL.Query()
	raw := q.Get("accept")
	if raw == "" {
		raw = q.Get("outcome")
	}
	if raw == "" {
		return "", apperrors.ValidationField("accept", "accept is required")
	}
	o, ok := project.ParseOutcome(raw)
	if !ok {
		return "", apperrors.ValidationField("accept", "accept must be true or false")
	}
	return o, nil
}
