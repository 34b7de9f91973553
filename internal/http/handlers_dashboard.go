package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/project"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/service"
)

// DashboardHandlers serves the per-role dashboard views.
type DashboardHandlers struct {
	Projects *service.LifecycleService
	Auth     AuthServiceInterface
	Errors   *ErrorRenderer
	Logger   *slog.Logger
}

func (h *DashboardHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type dashboardView struct {
	Identity domainauth.Identity `json:"identity"`
	// Badge is the cached display role; the identity above is authoritative.
	Badge    *domainauth.Badge `json:"badge,omitempty"`
	Summary  project.Summary   `json:"summary"`
	Projects []project.Project `json:"projects"`
}

// View renders the caller's dashboard. The project listing and the cached
// badge are fetched concurrently.
// GET /{student,faculty,college,admin}/dashboard.
func (h *DashboardHandlers) View(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOrFail(w, r, h.Errors)
	if !ok {
		return
	}

	view := dashboardView{Identity: caller.Identity}
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		projects, err := h.Projects.List(ctx, caller)
		if err != nil {
			return err
		}
		view.Projects = projects
		return nil
	})
	g.Go(func() error {
		view.Badge = h.badge(ctx, caller.Credential)
		return nil
	})
	if err := g.Wait(); err != nil {
		h.Errors.Render(w, r, err)
		return
	}

	if view.Projects == nil {
		view.Projects = []project.Project{}
	}
	view.Summary = project.Summarize(view.Projects)
	WriteJSON(w, http.StatusOK, view)
}

// badge is best effort; a missing or unreachable cache shows no badge.
func (h *DashboardHandlers) badge(ctx context.Context, cred domainauth.Credential) *domainauth.Badge {
	if h.Auth == nil {
		return nil
	}
	b, err := h.Auth.Badge(ctx, cred)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			h.logger().DebugContext(ctx, "advisory badge lookup failed", "error", err)
		}
		return nil
	}
	return &b
}
