package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dinesh02121/project-portal/config"
	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	authmocks "github.com/Dinesh02121/project-portal/internal/mocks/auth"
)

type fakeBackend struct {
	srv        *httptest.Server
	decisions  atomic.Int32
	lastQuery  atomic.Value
	lastStatus atomic.Value
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/verify", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer fac-1":
			writeBody(w, `{"role":"TEACHER","email":"fac@example.edu","userId":3}`)
		case "Bearer stu-1":
			writeBody(w, `{"role":"STUDENT","email":"stu@example.edu","userId":7}`)
		case "Bearer adm-1":
			writeBody(w, `{"role":"ADMIN","email":"ops@example.edu","userId":1}`)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})
	mux.HandleFunc("GET /student/dashboard/projects", func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, `[
			{"projectId":1,"title":"Compiler","status":"PENDING"},
			{"projectId":2,"title":"Scheduler","status":"IN_PROGRESS","progress":40,"facultyName":"Dr. Rao"}
		]`)
	})
	mux.HandleFunc("GET /faculty/dashboard/requests", func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, `[
			{"projectId":42,"title":"Ledger","status":"PENDING"},
			{"projectId":43,"title":"Kernel","status":"IN_PROGRESS","progress":10}
		]`)
	})
	mux.HandleFunc("GET /auth/admin/colleges", func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, `[
			{"collegeId":4,"collegeName":"Acme Institute","officialDomain":"acme.edu","city":"Pune","status":"PENDING"},
			{"collegeId":5,"collegeName":"Beta College","status":"APPROVED"}
		]`)
	})
	mux.HandleFunc("PUT /auth/admin/approve/{name}", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		fb.lastStatus.Store(r.PathValue("name") + "=" + string(b))
		_, _ = io.WriteString(w, "College status updated")
	})
	mux.HandleFunc("GET /faculty/dashboard/project/42/details", func(w http.ResponseWriter, _ *http.Request) {
		writeBody(w, `{"projectId":42,"title":"Ledger","status":"PENDING"}`)
	})
	mux.HandleFunc("PUT /faculty/dashboard/project/42/decision", func(w http.ResponseWriter, r *http.Request) {
		fb.decisions.Add(1)
		fb.lastQuery.Store(r.URL.RawQuery)
		w.WriteHeader(http.StatusOK)
	})
	fb.srv = httptest.NewServer(mux)
	t.Cleanup(fb.srv.Close)
	return fb
}

func writeBody(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func newCommandContext(t *testing.T, backendURL string) (*commandContext, *bytes.Buffer) {
	t.Helper()
	cfg := config.AppConfig{
		Backend: config.BackendConfig{BaseURL: backendURL},
		Auth:    config.AuthConfig{Strategy: config.CredentialStrategyBearer, RetryBackoff: time.Millisecond},
	}
	cfg.Sanitize()
	var out bytes.Buffer
	return &commandContext{
		Ctx:    context.Background(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: cfg,
		Out:    &out,
	}, &out
}

func TestRunVerify(t *testing.T) {
	fb := newFakeBackend(t)
	cmdCtx, out := newCommandContext(t, fb.srv.URL)

	require.NoError(t, runVerify(cmdCtx, []string{"--token", "fac-1"}))

	assert.Contains(t, out.String(), "FACULTY")
	assert.Contains(t, out.String(), "fac@example.edu")
	assert.Contains(t, out.String(), "bearer")
}

func TestRunVerify_TokenFromEnv(t *testing.T) {
	fb := newFakeBackend(t)
	cmdCtx, out := newCommandContext(t, fb.srv.URL)
	t.Setenv(tokenEnv, "stu-1")

	require.NoError(t, runVerify(cmdCtx, []string{"--json"}))

	assert.Contains(t, out.String(), `"role": "STUDENT"`)
}

func TestRunVerify_Errors(t *testing.T) {
	fb := newFakeBackend(t)

	t.Run("missing token", func(t *testing.T) {
		t.Setenv(tokenEnv, "")
		cmdCtx, _ := newCommandContext(t, fb.srv.URL)
		assert.ErrorContains(t, runVerify(cmdCtx, nil), "session credential is required")
	})

	t.Run("rejected token", func(t *testing.T) {
		cmdCtx, _ := newCommandContext(t, fb.srv.URL)
		assert.ErrorContains(t, runVerify(cmdCtx, []string{"--token", "nope"}), "verify credential")
	})
}

func TestRunListProjects(t *testing.T) {
	fb := newFakeBackend(t)
	cmdCtx, out := newCommandContext(t, fb.srv.URL)

	require.NoError(t, runListProjects(cmdCtx, []string{"--token", "stu-1"}))

	text := out.String()
	assert.Contains(t, text, "Compiler")
	assert.Contains(t, text, "Dr. Rao")
	assert.Contains(t, text, "40%")
	assert.Contains(t, text, "Total 2")
}

func TestRunReviewQueue(t *testing.T) {
	fb := newFakeBackend(t)
	cmdCtx, out := newCommandContext(t, fb.srv.URL)

	require.NoError(t, runReviewQueue(cmdCtx, []string{"--token", "fac-1"}))

	assert.Contains(t, out.String(), "Ledger")
	assert.NotContains(t, out.String(), "Kernel")
}

func TestRunColleges(t *testing.T) {
	fb := newFakeBackend(t)
	cmdCtx, out := newCommandContext(t, fb.srv.URL)

	require.NoError(t, runListColleges(cmdCtx, []string{"--token", "adm-1"}))

	assert.Contains(t, out.String(), "Acme Institute")
	assert.Contains(t, out.String(), "Total 2  Pending 1  Approved 1  Rejected 0")
}

func TestRunSetCollegeStatus(t *testing.T) {
	fb := newFakeBackend(t)
	cmdCtx, out := newCommandContext(t, fb.srv.URL)

	require.NoError(t, runSetCollegeStatus(cmdCtx, []string{"--token", "adm-1", "--name", "Acme Institute", "--status", "approved"}))

	assert.Equal(t, `Acme Institute="APPROVED"`, fb.lastStatus.Load())
	assert.Contains(t, out.String(), "APPROVED")

	assert.ErrorContains(t, runSetCollegeStatus(cmdCtx, []string{"--token", "adm-1", "--status", "approved"}), "--name is required")
	assert.Error(t, runSetCollegeStatus(cmdCtx, []string{"--token", "fac-1", "--name", "Acme Institute", "--status", "approved"}))
}

func TestRunDecide(t *testing.T) {
	fb := newFakeBackend(t)
	cmdCtx, out := newCommandContext(t, fb.srv.URL)

	require.NoError(t, runDecide(cmdCtx, []string{"--token", "fac-1", "--id", "42", "--outcome", "accept"}))

	assert.Equal(t, int32(1), fb.decisions.Load())
	assert.Equal(t, "accept=true", fb.lastQuery.Load())
	assert.Contains(t, out.String(), "IN_PROGRESS")
}

func TestRunDecide_Validation(t *testing.T) {
	fb := newFakeBackend(t)
	cmdCtx, _ := newCommandContext(t, fb.srv.URL)

	assert.ErrorContains(t, runDecide(cmdCtx, []string{"--token", "fac-1", "--outcome", "accept"}), "--id is required")
	assert.ErrorContains(t, runDecide(cmdCtx, []string{"--token", "fac-1", "--id", "42", "--outcome", "maybe"}), "--outcome")
	assert.ErrorContains(t, runProgress(cmdCtx, []string{"--token", "fac-1", "--id", "42"}), "--value is required")
	assert.Zero(t, fb.decisions.Load())
}

func TestClearBadge(t *testing.T) {
	cmdCtx, out := newCommandContext(t, "http://localhost:8081")
	cache := authmocks.NewMemoryAdvisoryCache()
	cred := domainauth.Credential{Kind: domainauth.CredentialBearer, Value: "fac-1"}
	require.NoError(t, cache.Put(cmdCtx.Ctx, cred.Fingerprint(), domainauth.Badge{Role: domainauth.RoleFaculty}, time.Minute))

	require.NoError(t, clearBadge(cmdCtx, cache, cred, true))
	assert.True(t, cache.Has(cred.Fingerprint()), "dry run keeps the badge")
	assert.Contains(t, out.String(), "Would clear FACULTY")

	out.Reset()
	require.NoError(t, clearBadge(cmdCtx, cache, cred, false))
	assert.False(t, cache.Has(cred.Fingerprint()))
	assert.Contains(t, out.String(), "Cleared FACULTY")

	out.Reset()
	require.NoError(t, clearBadge(cmdCtx, cache, cred, false))
	assert.Contains(t, out.String(), "No badge cached")
}

func TestPrintUsageListsCommands(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printUsage(&out))

	for name := range commands() {
		assert.True(t, strings.Contains(out.String(), name), "usage missing %s", name)
	}
	assert.Contains(t, out.String(), tokenEnv)
}
