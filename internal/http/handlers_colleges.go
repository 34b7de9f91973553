package httpx

import (
	"net/http"

	"github.com/Dinesh02121/project-portal/internal/domain/college"
	"github.com/Dinesh02121/project-portal/internal/service"
)

// CollegeHandlers serves college registration review for system administrators.
type CollegeHandlers struct {
	Svc    *service.CollegeService
	Errors *ErrorRenderer
}

type collegeStatusRequest struct {
	Status string `json:"status"`
}

// List returns every registered college with counts per status.
// GET /admin/colleges.
func (h *CollegeHandlers) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	colleges, err := h.Svc.List(r.Context(), caller)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	if colleges == nil {
		colleges = []college.College{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"colleges": colleges, "counts": college.Count(colleges)})
}

// SetStatus approves, rejects or resets a college registration.
// PUT /admin/colleges/{name}/status.
func (h *CollegeHandlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}
	var req collegeStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	c, err := h.Svc.SetStatus(r.Context(), caller, r.PathValue("name"), req.Status)
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}
