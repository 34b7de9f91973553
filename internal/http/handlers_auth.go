package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/ports"
	"github.com/Dinesh02121/project-portal/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, in ports.LoginInput) (*service.LoginResult, error)
	Badge(ctx context.Context, cred domainauth.Credential) (domainauth.Badge, error)
	Logout(ctx context.Context, cred domainauth.Credential) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc         AuthServiceInterface
	Credentials CredentialSource
	Cookie      SessionCookie
	Errors      *ErrorRenderer
	// PostLoginPath verifies the new credential and redirects to the role's home.
	PostLoginPath string
	LoginPath     string
	Logger        *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message    string           `json:"message,omitempty"`
	Token      string           `json:"token,omitempty"`
	TokenType  string           `json:"token_type,omitempty"`
	Badge      domainauth.Badge `json:"badge"`
	RedirectTo string           `json:"redirect_to"`
}

// Login handles the user login endpoint.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, false)
}

// LoginAdmin handles the administrator login endpoint.
// POST /auth/loginAdmin.
func (h *AuthHandlers) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, true)
}

func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request, admin bool) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Login(r.Context(), ports.LoginInput{Email: req.Email, Password: req.Password, Admin: admin})
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}

	out := loginResponse{Message: res.Message, Badge: res.Badge, RedirectTo: h.postLoginPath()}
	if res.Credential.Kind == domainauth.CredentialBearer {
		out.Token = res.Credential.Value
		out.TokenType = "Bearer"
	} else {
		h.Cookie.Set(w, r, res.Credential.Value)
	}
	WriteJSON(w, http.StatusOK, out)
}

func (h *AuthHandlers) postLoginPath() string {
	if h.PostLoginPath != "" {
		return h.PostLoginPath
	}
	return "/dashboard"
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	cred := h.Credentials.Extract(r)
	if err := h.Svc.Logout(r.Context(), cred); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}
	if cred.Kind == domainauth.CredentialCookie {
		h.Cookie.Expire(w, r)
	}

	login := h.LoginPath
	if login == "" {
		login = service.DefaultLoginPath
	}
	if IsBrowserRequest(r) {
		http.Redirect(w, r, login, http.StatusFound)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"redirect_to": login,
	})
}

// Verify returns the identity the access gate verified for this request.
// GET /auth/verify (behind the guard).
func (h *AuthHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication_required", Message: "not verified"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"identity":      caller.Identity,
	})
}

// Badge returns the cached role badge. It is for display only.
// GET /auth/badge.
func (h *AuthHandlers) Badge(w http.ResponseWriter, r *http.Request) {
	badge, err := h.Svc.Badge(r.Context(), h.Credentials.Extract(r))
	if err != nil {
		h.Errors.Render(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, badge)
}
