package bootstrap

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dinesh02121/project-portal/config"
	"github.com/Dinesh02121/project-portal/internal/service"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(backendURL string) *config.AppConfig {
	cfg := &config.AppConfig{
		Backend: config.BackendConfig{BaseURL: backendURL},
		Auth:    config.AuthConfig{RetryBackoff: time.Millisecond},
		Redis:   config.RedisConfig{URI: "localhost:6379"},
	}
	cfg.Sanitize()
	return cfg
}

// fakeBackend answers verify for one student session and lists one project.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/verify", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("token")
		if err != nil || c.Value != "stu-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"role":"student","email":"s@example.edu","userId":7}`))
	})
	mux.HandleFunc("GET /student/dashboard/projects", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"projectId":1,"title":"Compiler","status":"PENDING","studentId":7}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "http", baseURL: "http://localhost:8081"},
		{name: "https", baseURL: "https://api.example.edu"},
		{name: "missing scheme", baseURL: "localhost:8081", wantErr: true},
		{name: "ftp", baseURL: "ftp://files.example.edu", wantErr: true},
		{name: "no host", baseURL: "http://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.AppConfig{Backend: config.BackendConfig{BaseURL: tt.baseURL}}
			err := ValidateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.Error(t, ValidateConfig(nil))
}

func TestAnalysisFields_Overlay(t *testing.T) {
	fields := analysisFields(config.AnalysisConfig{OverallGrade: "report.grade"})

	defaults := service.DefaultAnalysisFields()
	assert.Equal(t, "report.grade", fields.OverallGrade)
	assert.Equal(t, defaults.Strengths, fields.Strengths)
	assert.Equal(t, defaults.DetailedAnalysis, fields.DetailedAnalysis)
}

func TestNewServices_RejectsBadAnalysisExpression(t *testing.T) {
	cfg := testConfig("http://localhost:8081")
	cfg.Analysis.OverallGrade = "report.[["

	_, err := NewServices(&ServiceDeps{Config: cfg, Logger: quietLogger()})

	assert.ErrorContains(t, err, "analysis service")
}

func TestNewServices_WithoutRedisLeavesBadgesOff(t *testing.T) {
	svcs, err := NewServices(&ServiceDeps{Config: testConfig("http://localhost:8081"), Logger: quietLogger()})
	require.NoError(t, err)

	assert.Nil(t, NewAdvisoryCache(nil, config.RedisConfig{}))
	assert.Nil(t, svcs.Observability.MetricsSink)
	require.NotNil(t, svcs.Observability.DecisionNotifier)
	assert.Equal(t, "/auth/login", svcs.Redirects.LoginPath())
	assert.NotNil(t, svcs.Colleges)
}

func TestBuildHTTPHandler_ServesThroughBackend(t *testing.T) {
	backendSrv := fakeBackend(t)
	cfg := testConfig(backendSrv.URL)
	require.NoError(t, ValidateConfig(cfg))

	svcs, err := NewServices(&ServiceDeps{Config: cfg, Logger: quietLogger()})
	require.NoError(t, err)
	h := BuildHTTPHandler(cfg, svcs, nil, quietLogger())

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("student lists projects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/student/projects", nil)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(&http.Cookie{Name: "token", Value: "stu-1"})
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body struct {
			Projects []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"projects"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Projects, 1)
		assert.Equal(t, "1", body.Projects[0].ID)
		assert.Equal(t, "Compiler", body.Projects[0].Title)
	})

	t.Run("rejected session redirects browsers to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/student/dashboard", nil)
		req.Header.Set("Accept", "text/html")
		req.AddCookie(&http.Cookie{Name: "token", Value: "stale"})
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "/auth/login")
	})

	t.Run("faculty routes deny students", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/faculty/dashboard", nil)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(&http.Cookie{Name: "token", Value: "stu-1"})
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
