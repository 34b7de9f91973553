package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/service"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", apperrors.ValidationField("title", "title is required"), http.StatusBadRequest},
		{"authentication", apperrors.Authentication("expired"), http.StatusUnauthorized},
		{"authorization", apperrors.Authorization("not yours"), http.StatusForbidden},
		{"unknown role", apperrors.UnknownRole("janitor"), http.StatusForbidden},
		{"no destination", service.ErrNoDestination, http.StatusForbidden},
		{"not found", apperrors.NotFound("gone"), http.StatusNotFound},
		{"transient", apperrors.Transient("backend down"), http.StatusServiceUnavailable},
		{"wrapped transient", fmt.Errorf("list: %w", apperrors.Transient("x")), http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFor(tc.err))
		})
	}
}

func TestErrorRenderer_Render(t *testing.T) {
	e := &ErrorRenderer{LoginPath: "/signin", Logger: quietLogger()}

	t.Run("validation carries field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), apperrors.ValidationField("title", "title is required"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "validation", body["error"])
		assert.Equal(t, "title", body["field"])
		assert.Equal(t, "title is required", body["message"])
	})

	t.Run("authentication redirects browsers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "text/html")
		rec := httptest.NewRecorder()
		e.Render(rec, req, apperrors.Authentication("expired"))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/signin?reason=unauthenticated", rec.Header().Get("Location"))
	})

	t.Run("authentication is 401 for scripts", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), apperrors.Authentication("expired"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "/signin?reason=unauthenticated", decodeBody(t, rec)["redirect_to"])
	})

	t.Run("authorization never redirects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "text/html")
		rec := httptest.NewRecorder()
		e.Render(rec, req, apperrors.Authorization("not yours"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Location"))
	})

	t.Run("transient is retryable", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), apperrors.Transient("backend down"))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, retryAfterSeconds, rec.Header().Get("Retry-After"))
		assert.Equal(t, true, decodeBody(t, rec)["retryable"])
	})

	t.Run("internal details hidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("dial tcp 10.0.0.3:5432"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "internal", body["error"])
		assert.Equal(t, "internal error", body["message"])
	})
}
