package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/service"
)

// retryAfterSeconds is advertised on transient failures.
const retryAfterSeconds = "5"

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Reason     string `json:"reason,omitempty"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Retryable  bool   `json:"retryable,omitempty"`
}

// StatusFor maps an error to the HTTP status it is rendered with.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.IsAuthentication(err):
		return http.StatusUnauthorized
	case apperrors.IsAuthorization(err), errors.Is(err, service.ErrNoDestination):
		return http.StatusForbidden
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsTransient(err), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorCode names err in the response body.
func errorCode(err error, status int) string {
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}
	switch status {
	case http.StatusForbidden:
		return string(apperrors.ErrCodeAuthorization)
	case http.StatusServiceUnavailable:
		return string(apperrors.ErrCodeTransient)
	default:
		return string(apperrors.ErrCodeInternal)
	}
}

// ErrorRenderer writes AppErrors as JSON, or as a login redirect for browsers
// whose credential was rejected.
type ErrorRenderer struct {
	LoginPath string
	Logger    *slog.Logger
}

func (e *ErrorRenderer) logger() *slog.Logger {
	if e != nil && e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

func (e *ErrorRenderer) loginPath() string {
	if e != nil && e.LoginPath != "" {
		return e.LoginPath
	}
	return service.DefaultLoginPath
}

// Render writes err to w.
func (e *ErrorRenderer) Render(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	body := errorBody{Error: errorCode(err, status), Message: publicMessage(err, status)}

	switch status {
	case http.StatusBadRequest:
		body.Field = apperrors.GetField(err)
	case http.StatusUnauthorized:
		login := service.Destination{Path: e.loginPath(), Reason: string(domainauth.DecisionUnauthenticated)}
		if IsBrowserRequest(r) {
			http.Redirect(w, r, login.URL(), http.StatusFound)
			return
		}
		body.RedirectTo = login.URL()
	case http.StatusServiceUnavailable:
		body.Retryable = true
		w.Header().Set("Retry-After", retryAfterSeconds)
	case http.StatusInternalServerError:
		e.logger().ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err)
	}
	WriteJSON(w, status, body)
}

// publicMessage hides internal failures from callers.
func publicMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "internal error"
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
