package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/domain/project"
	"github.com/Dinesh02121/project-portal/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      AuthServiceInterface
	Gate      *service.AccessGate
	Redirects *service.RedirectRouter
	Projects  *service.LifecycleService
	Files     *service.FileNavigator
	Analysis  *service.AnalysisService
	Colleges  *service.CollegeService

	Credentials CredentialSource
	Cookie      SessionCookie
	// Readiness checks served on /readyz (optional).
	Readiness map[string]ReadinessCheck
	Logger    *slog.Logger
}

// Role sets guarding each route group.
var (
	studentRoles = domainauth.NewRoleSet(domainauth.RoleStudent)
	facultyRoles = domainauth.NewRoleSet(domainauth.RoleFaculty)
	collegeRoles = domainauth.NewRoleSet(domainauth.RoleCollegeAdmin)
	adminRoles   = domainauth.NewRoleSet(domainauth.RoleSystemAdmin)
	reviewRoles  = domainauth.NewRoleSet(
		domainauth.RoleFaculty,
		domainauth.RoleCollegeAdmin,
		domainauth.RoleSystemAdmin,
	)
)

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	redirects := services.Redirects
	if redirects == nil {
		redirects = service.NewRedirectRouter(service.RedirectRouterOptions{})
	}
	loginPath := redirects.LoginPath()
	errs := &ErrorRenderer{LoginPath: loginPath, Logger: services.Logger}
	guard := NewGuard(GuardOptions{
		Gate:        services.Gate,
		Router:      redirects,
		Credentials: services.Credentials,
		Cookie:      services.Cookie,
		Logger:      services.Logger,
	})

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.Readiness))

	if services.Auth != nil {
		registerAuthRoutes(mux, guard, &AuthHandlers{
			Svc:         services.Auth,
			Credentials: services.Credentials,
			Cookie:      services.Cookie,
			Errors:      errs,
			LoginPath:   loginPath,
			Logger:      services.Logger,
		})
	}
	mux.HandleFunc("GET /dashboard", guard.DashboardRedirect)

	if services.Projects != nil {
		registerDashboardRoutes(mux, guard, &DashboardHandlers{
			Projects: services.Projects,
			Auth:     services.Auth,
			Errors:   errs,
			Logger:   services.Logger,
		})
		registerProjectRoutes(mux, guard, &ProjectHandlers{
			Svc:    services.Projects,
			Errors: errs,
			Logger: services.Logger,
		})
	}
	if services.Files != nil && services.Analysis != nil {
		registerReviewRoutes(mux, guard, &ReviewHandlers{
			Files:    services.Files,
			Analysis: services.Analysis,
			Errors:   errs,
			Logger:   services.Logger,
		})
	}

	if services.Colleges != nil {
		registerCollegeRoutes(mux, guard, &CollegeHandlers{Svc: services.Colleges, Errors: errs})
	}

	return RequestID()(mux)
}

func registerAuthRoutes(mux *http.ServeMux, guard *Guard, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/loginAdmin", h.LoginAdmin)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/badge", h.Badge)
	mux.Handle("GET /auth/verify", guard.Protect(domainauth.AnyRole())(http.HandlerFunc(h.Verify)))
}

func registerDashboardRoutes(mux *http.ServeMux, guard *Guard, h *DashboardHandlers) {
	view := http.HandlerFunc(h.View)
	mux.Handle("GET /student/dashboard", guard.Protect(studentRoles)(view))
	mux.Handle("GET /faculty/dashboard", guard.Protect(facultyRoles)(view))
	mux.Handle("GET /college/dashboard", guard.Protect(collegeRoles)(view))
	mux.Handle("GET /admin/dashboard", guard.Protect(adminRoles)(view))
}

func registerProjectRoutes(mux *http.ServeMux, guard *Guard, h *ProjectHandlers) {
	protect := func(cmd project.Command, fn http.HandlerFunc) http.Handler {
		return guard.Protect(project.AllowedRoles(cmd))(fn)
	}

	// Student
	mux.Handle("GET /student/projects", guard.Protect(studentRoles)(http.HandlerFunc(h.List)))
	mux.Handle("POST /student/projects", protect(project.CommandSubmit, h.Submit))
	mux.Handle("DELETE /student/projects/{id}", guard.Protect(studentRoles)(http.HandlerFunc(h.Delete)))

	// Faculty
	mux.Handle("GET /faculty/requests", guard.Protect(facultyRoles)(http.HandlerFunc(h.ReviewQueue)))
	mux.Handle("GET /faculty/projects/{id}", guard.Protect(reviewRoles)(http.HandlerFunc(h.Get)))
	mux.Handle("PUT /faculty/projects/{id}/decision", protect(project.CommandDecide, h.Decide))
	mux.Handle("POST /faculty/projects/{id}/progress", protect(project.CommandProgress, h.Progress))
	mux.Handle("PUT /faculty/projects/{id}/finalize", protect(project.CommandFinalize, h.Finalize))
	mux.Handle("PUT /faculty/projects/{id}/start", protect(project.CommandStart, h.Start))

	// College and system administrators
	mux.Handle("GET /college/projects", guard.Protect(reviewRoles)(http.HandlerFunc(h.List)))
	mux.Handle("PUT /college/projects/{id}/approve", protect(project.CommandApprove, h.Approve))
	mux.Handle("PUT /college/projects/{id}/request-faculty", protect(project.CommandRequestFaculty, h.RequestFaculty))
	mux.Handle("DELETE /college/projects/{id}", guard.Protect(reviewRoles)(http.HandlerFunc(h.Delete)))
}

func registerReviewRoutes(mux *http.ServeMux, guard *Guard, h *ReviewHandlers) {
	protect := func(fn http.HandlerFunc) http.Handler {
		return guard.Protect(reviewRoles)(fn)
	}
	mux.Handle("GET /faculty/projects/{id}/files", protect(h.ListFiles))
	mux.Handle("GET /faculty/projects/{id}/file/content", protect(h.FileContent))
	mux.Handle("GET /faculty/projects/{id}/file/download", protect(h.Download))
	mux.Handle("POST /faculty/projects/{id}/ai-analysis", protect(h.Analyze))

	// Students browse their own submissions; ownership is checked per call.
	own := func(fn http.HandlerFunc) http.Handler {
		return guard.Protect(studentRoles)(fn)
	}
	mux.Handle("GET /student/projects/{id}/files", own(h.ListFiles))
	mux.Handle("GET /student/projects/{id}/file/content", own(h.FileContent))
	mux.Handle("GET /student/projects/{id}/file/download", own(h.Download))
}

func registerCollegeRoutes(mux *http.ServeMux, guard *Guard, h *CollegeHandlers) {
	mux.Handle("GET /admin/colleges", guard.Protect(adminRoles)(http.HandlerFunc(h.List)))
	mux.Handle("PUT /admin/colleges/{name}/status", guard.Protect(adminRoles)(http.HandlerFunc(h.SetStatus)))
}
