package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/service"
)

// RequestIDHeader carries the request correlation id.
const RequestIDHeader = "X-Request-ID"

// RequestID returns a middleware that tags every request with a correlation id,
// reusing a well-formed inbound X-Request-ID.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(SetRequestIDInContext(r.Context(), id)))
		})
	}
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", RequestIDFromContext(r.Context())),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("request_id", RequestIDFromContext(r.Context())),
						slog.String("stack", string(debug.Stack())))
					WriteError(w, ErrorParams{
						Code:    http.StatusInternalServerError,
						ErrCode: "internal",
						Err:     errors.New("internal error"),
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// IsBrowserRequest reports whether r comes from a browser navigation rather
// than a script. Browsers get redirects; scripts get JSON.
func IsBrowserRequest(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return false
	}
	if r.Header.Get("Authorization") != "" {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// GuardOptions groups dependencies for Guard.
type GuardOptions struct {
	Gate        *service.AccessGate
	Router      *service.RedirectRouter
	Credentials CredentialSource
	Cookie      SessionCookie
	Logger      *slog.Logger
}

// Guard admits requests whose verified role is allowed on a route. Every
// request is its own gate mount; nothing is cached between requests.
type Guard struct {
	gate   *service.AccessGate
	router *service.RedirectRouter
	creds  CredentialSource
	cookie SessionCookie
	logger *slog.Logger
}

// NewGuard constructs a Guard.
func NewGuard(opts GuardOptions) *Guard {
	router := opts.Router
	if router == nil {
		router = service.NewRedirectRouter(service.RedirectRouterOptions{})
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		gate:   opts.Gate,
		router: router,
		creds:  opts.Credentials,
		cookie: opts.Cookie,
		logger: logger.With("component", "guard"),
	}
}

// Protect returns a middleware that requires a Granted decision for allowed.
// Denied and unauthenticated callers are sent to the login page once.
func (g *Guard) Protect(allowed domainauth.RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cred := g.creds.Extract(r)
			m, d, ok := g.settle(w, r, allowed, cred)
			if !ok {
				return
			}
			if d.IsGranted() {
				ctx := SetCallerInContext(r.Context(), service.Caller{Identity: *d.Identity, Credential: cred})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			g.reject(w, r, m.Latch(), d)
		})
	}
}

// settle runs one mount to a terminal decision. It writes the response itself
// and reports false when the request ended first.
func (g *Guard) settle(
	w http.ResponseWriter,
	r *http.Request,
	allowed domainauth.RoleSet,
	cred domainauth.Credential,
) (*service.Mount, domainauth.AccessDecision, bool) {
	var clear atomic.Bool
	m := g.gate.Mount(r.Context(), allowed, service.WithCredentialClearer(func() { clear.Store(true) }))
	defer m.Close()

	d, err := m.Authorize(r.Context(), cred)
	if err != nil {
		g.logger.Debug("request ended before access decision",
			"mount", m.ID(),
			"path", r.URL.Path,
			"error", err)
		WriteError(w, ErrorParams{Code: http.StatusServiceUnavailable, ErrCode: "transient", Err: err})
		return m, d, false
	}
	if clear.Load() && cred.Kind == domainauth.CredentialCookie {
		g.cookie.Expire(w, r)
	}
	return m, d, true
}

// reject answers a Denied or Unauthenticated decision.
func (g *Guard) reject(w http.ResponseWriter, r *http.Request, latch *service.Latch, d domainauth.AccessDecision) {
	status := http.StatusForbidden
	code := "access_denied"
	if d.State == domainauth.DecisionUnauthenticated {
		status = http.StatusUnauthorized
		code = "authentication_required"
	}

	dest, ok, err := g.router.Issue(latch, d, false)
	if err != nil || !ok {
		WriteJSON(w, status, errorBody{Error: code, Message: "access denied", Reason: d.Reason})
		return
	}
	if IsBrowserRequest(r) {
		http.Redirect(w, r, dest.URL(), http.StatusFound)
		return
	}
	WriteJSON(w, status, errorBody{
		Error:      code,
		Message:    "access denied",
		Reason:     dest.Reason,
		RedirectTo: dest.URL(),
	})
}

// DashboardRedirect sends a freshly verified caller to their role's home.
// GET /dashboard.
func (g *Guard) DashboardRedirect(w http.ResponseWriter, r *http.Request) {
	cred := g.creds.Extract(r)
	m, d, ok := g.settle(w, r, domainauth.AnyRole(), cred)
	if !ok {
		return
	}
	if !d.IsGranted() {
		g.reject(w, r, m.Latch(), d)
		return
	}

	dest, _, err := g.router.Issue(m.Latch(), d, true)
	if err != nil {
		g.logger.Warn("verified role has no dashboard", "role", d.Identity.Role)
		WriteJSON(w, http.StatusForbidden, errorBody{
			Error:   "access_denied",
			Message: err.Error(),
			Reason:  domainauth.ReasonRoleMismatch,
		})
		return
	}
	if IsBrowserRequest(r) {
		http.Redirect(w, r, dest.URL(), http.StatusFound)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"redirect_to": dest.URL(),
		"identity":    d.Identity,
	})
}
