package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	"github.com/Dinesh02121/project-portal/internal/mocks"
	authmocks "github.com/Dinesh02121/project-portal/internal/mocks/auth"
	"github.com/Dinesh02121/project-portal/internal/service"
)

// Tokens known to the stub authority, by the raw role the backend reports.
const (
	studentToken = "stu"
	facultyToken = "fac"
	collegeToken = "col"
	adminToken   = "adm"
	oddRoleToken = "odd"
)

type gateway struct {
	handler   http.Handler
	authority *authmocks.StubAuthority
	advisory  *authmocks.MemoryAdvisoryCache
	backend   *mocks.MockProjectBackend
	files     *mocks.MockFileStore
	oracle    *mocks.MockAnalysisOracle
	colleges  *mocks.MockCollegeRegistry
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGateway(t *testing.T) *gateway {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := quietLogger()

	g := &gateway{
		authority: authmocks.NewStubAuthority(map[string]string{
			studentToken: "student",
			facultyToken: "Teacher",
			collegeToken: "college-admin",
			adminToken:   "ADMIN",
			oddRoleToken: "janitor",
		}),
		advisory: authmocks.NewMemoryAdvisoryCache(),
		backend:  mocks.NewMockProjectBackend(ctrl),
		files:    mocks.NewMockFileStore(ctrl),
		oracle:   mocks.NewMockAnalysisOracle(ctrl),
		colleges: mocks.NewMockCollegeRegistry(ctrl),
	}

	verifier := service.NewSessionVerifier(service.SessionVerifierOptions{
		Authority: g.authority,
		Strategy:  domainauth.CredentialCookie,
		Timeout:   time.Second,
		Logger:    logger,
	})
	gate := service.NewAccessGate(service.AccessGateOptions{
		Verifier:     verifier,
		Advisory:     g.advisory,
		RetryBackoff: time.Millisecond,
		Logger:       logger,
	})
	analysis, err := service.NewAnalysisService(service.AnalysisServiceOptions{Oracle: g.oracle, Logger: logger})
	require.NoError(t, err)

	auth := service.NewAuthService(service.AuthServiceOptions{
		Authority: g.authority,
		Advisory:  g.advisory,
		Logger:    logger,
	})

	g.handler = NewRouter(RouterServices{
		Auth:        auth,
		Gate:        gate,
		Projects:    service.NewLifecycleService(service.LifecycleServiceOptions{Backend: g.backend, Logger: logger}),
		Files:       service.NewFileNavigator(service.FileNavigatorOptions{Store: g.files, Projects: g.backend, Logger: logger}),
		Analysis:    analysis,
		Colleges:    service.NewCollegeService(service.CollegeServiceOptions{Registry: g.colleges, Logger: logger}),
		Credentials: CredentialSource{Strategy: domainauth.CredentialCookie},
		Logger:      logger,
	})
	return g
}

// expectDashboard lets the dashboard view behind token list an empty set of
// projects.
func (g *gateway) expectDashboard(token string) {
	g.backend.EXPECT().ListProjects(gomock.Any(), credFor(token), gomock.Any()).Return(nil, nil).AnyTimes()
}

// credFor is the credential the gateway extracts for token.
func credFor(token string) domainauth.Credential {
	return domainauth.Credential{Kind: domainauth.CredentialCookie, Value: token}
}

// do sends an API request carrying token as the session cookie.
func (g *gateway) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Accept", "application/json")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: DefaultSessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)
	return rec
}

// browse sends a browser navigation carrying token as the session cookie.
func (g *gateway) browse(t *testing.T, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: DefaultSessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)
	return rec
}

// expiredSessionCookie reports whether rec clears the session cookie.
func expiredSessionCookie(rec *httptest.ResponseRecorder) bool {
	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultSessionCookie && c.MaxAge < 0 {
			return true
		}
	}
	return false
}
