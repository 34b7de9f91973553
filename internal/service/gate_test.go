package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	authmocks "github.com/Dinesh02121/project-portal/internal/mocks/auth"
	"github.com/Dinesh02121/project-portal/internal/observability/statsd"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

type gateFixture struct {
	authority *authmocks.StubAuthority
	advisory  *authmocks.MemoryAdvisoryCache
	metrics   *statsd.Recorder
	gate      *AccessGate
}

func newGateFixture(roles map[string]string) *gateFixture {
	f := &gateFixture{
		authority: authmocks.NewStubAuthority(roles),
		advisory:  authmocks.NewMemoryAdvisoryCache(),
		metrics:   &statsd.Recorder{},
	}
	f.gate = NewAccessGate(AccessGateOptions{
		Verifier:     newTestVerifier(f.authority),
		Advisory:     f.advisory,
		RetryBackoff: time.Millisecond,
		Metrics:      f.metrics,
		Logger:       quietLogger(),
	})
	return f
}

func TestAccessGate_GrantedIffRoleAllowed(t *testing.T) {
	roles := map[string]string{
		"stu": "student",
		"fac": "Teacher",
		"col": "college",
		"adm": "ADMIN",
	}
	tests := []struct {
		token   string
		allowed domainauth.RoleSet
		want    domainauth.DecisionState
	}{
		{"stu", domainauth.NewRoleSet(domainauth.RoleStudent), domainauth.DecisionGranted},
		{"stu", domainauth.NewRoleSet(domainauth.RoleFaculty), domainauth.DecisionDenied},
		{"fac", domainauth.NewRoleSet(domainauth.RoleFaculty, domainauth.RoleSystemAdmin), domainauth.DecisionGranted},
		{"col", domainauth.NewRoleSet(domainauth.RoleSystemAdmin), domainauth.DecisionDenied},
		{"adm", domainauth.AnyRole(), domainauth.DecisionGranted},
		{"adm", domainauth.NewRoleSet(), domainauth.DecisionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.token+"/"+string(tt.want), func(t *testing.T) {
			f := newGateFixture(roles)
			d, err := f.gate.Authorize(context.Background(), tt.allowed, cookie(tt.token))

			require.NoError(t, err)
			assert.Equal(t, tt.want, d.State)
			if tt.want == domainauth.DecisionDenied {
				assert.Equal(t, domainauth.ReasonRoleMismatch, d.Reason)
				assert.Nil(t, d.Identity)
			} else {
				require.NotNil(t, d.Identity)
			}
		})
	}
}

func TestAccessGate_TimeoutTwiceSettlesUnreachable(t *testing.T) {
	f := newGateFixture(nil)
	f.authority.VerifyFunc = func(context.Context, domainauth.Credential) (ports.VerifiedPrincipal, error) {
		return ports.VerifiedPrincipal{}, apperrors.Transient("verify timed out")
	}

	d, err := f.gate.Authorize(context.Background(), domainauth.AnyRole(), cookie("abc"))

	require.NoError(t, err)
	assert.Equal(t, domainauth.Denied(domainauth.ReasonUnreachable), d)
	assert.EqualValues(t, 2, f.authority.Calls())
}

func TestAccessGate_RetrySucceedsAfterOneTimeout(t *testing.T) {
	f := newGateFixture(nil)
	var n atomic.Int32
	f.authority.VerifyFunc = func(context.Context, domainauth.Credential) (ports.VerifiedPrincipal, error) {
		if n.Add(1) == 1 {
			return ports.VerifiedPrincipal{}, apperrors.Transient("verify timed out")
		}
		return ports.VerifiedPrincipal{Subject: "7", RawRole: "FACULTY"}, nil
	}

	d, err := f.gate.Authorize(context.Background(), domainauth.AnyRole(), cookie("abc"))

	require.NoError(t, err)
	assert.True(t, d.IsGranted())
	assert.EqualValues(t, 2, f.authority.Calls())
}

func TestAccessGate_UnauthenticatedClearsAdvisoryAndCredential(t *testing.T) {
	f := newGateFixture(nil)
	cred := cookie("expired")
	require.NoError(t, f.advisory.Put(context.Background(), cred.Fingerprint(), domainauth.Badge{Role: domainauth.RoleStudent}, time.Minute))

	var cleared atomic.Bool
	d, err := f.gate.Authorize(context.Background(), domainauth.AnyRole(), cred,
		WithCredentialClearer(func() { cleared.Store(true) }))

	require.NoError(t, err)
	assert.Equal(t, domainauth.Unauthenticated(), d)
	assert.False(t, f.advisory.Has(cred.Fingerprint()))
	assert.True(t, cleared.Load())
	assert.EqualValues(t, 1, f.metrics.CountOf("auth.decision", map[string]string{"state": "unauthenticated"}))
}

func TestAccessGate_DeniedClearsAdvisoryButKeepsCredential(t *testing.T) {
	f := newGateFixture(map[string]string{"stu": "STUDENT"})
	cred := cookie("stu")
	require.NoError(t, f.advisory.Put(context.Background(), cred.Fingerprint(), domainauth.Badge{Role: domainauth.RoleFaculty}, time.Minute))

	var cleared atomic.Bool
	d, err := f.gate.Authorize(context.Background(), domainauth.NewRoleSet(domainauth.RoleFaculty), cred,
		WithCredentialClearer(func() { cleared.Store(true) }))

	require.NoError(t, err)
	assert.Equal(t, domainauth.DecisionDenied, d.State)
	assert.False(t, f.advisory.Has(cred.Fingerprint()))
	assert.False(t, cleared.Load(), "a role mismatch must not log the caller out")
}

func TestAccessGate_CredentialClearedOnlyWhenUnauthenticated(t *testing.T) {
	transient := func(context.Context, domainauth.Credential) (ports.VerifiedPrincipal, error) {
		return ports.VerifiedPrincipal{}, apperrors.Transient("verify timed out")
	}
	tests := []struct {
		name        string
		token       string
		allowed     domainauth.RoleSet
		verify      func(context.Context, domainauth.Credential) (ports.VerifiedPrincipal, error)
		want        domainauth.AccessDecision
		wantCleared bool
		wantBadge   bool
	}{
		{"granted", "stu", domainauth.AnyRole(), nil, domainauth.AccessDecision{State: domainauth.DecisionGranted}, false, true},
		{"role mismatch", "stu", domainauth.NewRoleSet(domainauth.RoleFaculty), nil, domainauth.Denied(domainauth.ReasonRoleMismatch), false, false},
		{"unknown role", "principal", domainauth.AnyRole(), nil, domainauth.Denied(domainauth.ReasonUnknownRole), false, false},
		{"unreachable", "stu", domainauth.AnyRole(), transient, domainauth.Denied(domainauth.ReasonUnreachable), false, false},
		{"unauthenticated", "expired", domainauth.AnyRole(), nil, domainauth.Unauthenticated(), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGateFixture(map[string]string{"stu": "STUDENT", "principal": "Principal"})
			f.authority.VerifyFunc = tt.verify
			cred := cookie(tt.token)
			require.NoError(t, f.advisory.Put(context.Background(), cred.Fingerprint(), domainauth.Badge{Role: domainauth.RoleStudent}, time.Minute))

			var cleared atomic.Bool
			d, err := f.gate.Authorize(context.Background(), tt.allowed, cred,
				WithCredentialClearer(func() { cleared.Store(true) }))

			require.NoError(t, err)
			assert.Equal(t, tt.want.State, d.State)
			assert.Equal(t, tt.want.Reason, d.Reason)
			assert.Equal(t, tt.wantCleared, cleared.Load())
			assert.Equal(t, tt.wantBadge, f.advisory.Has(cred.Fingerprint()))
		})
	}
}

func TestAccessGate_ClearerRunsBeforeAuthorizeReturns(t *testing.T) {
	f := newGateFixture(nil)
	var cleared atomic.Bool

	for range 20 {
		cleared.Store(false)
		d, err := f.gate.Authorize(context.Background(), domainauth.AnyRole(), cookie("expired"),
			WithCredentialClearer(func() { cleared.Store(true) }))
		require.NoError(t, err)
		require.Equal(t, domainauth.DecisionUnauthenticated, d.State)
		assert.True(t, cleared.Load())
	}
}

func TestAccessGate_GrantedRefreshesAdvisoryBadge(t *testing.T) {
	f := newGateFixture(map[string]string{"fac": "faculty"})
	cred := cookie("fac")

	var cleared atomic.Bool
	d, err := f.gate.Authorize(context.Background(), domainauth.AnyRole(), cred,
		WithCredentialClearer(func() { cleared.Store(true) }))

	require.NoError(t, err)
	require.True(t, d.IsGranted())
	badge, err := f.advisory.Get(context.Background(), cred.Fingerprint())
	require.NoError(t, err)
	assert.True(t, badge.Advisory)
	assert.Equal(t, domainauth.RoleFaculty, badge.Role)
	assert.False(t, cleared.Load())
}

func TestAccessGate_UnknownRoleIsDenied(t *testing.T) {
	f := newGateFixture(map[string]string{"p": "Principal"})

	d, err := f.gate.Authorize(context.Background(), domainauth.AnyRole(), cookie("p"))

	require.NoError(t, err)
	assert.Equal(t, domainauth.Denied(domainauth.ReasonUnknownRole), d)
}

func TestMount_SettlesOnce(t *testing.T) {
	f := newGateFixture(map[string]string{"stu": "STUDENT"})
	m := f.gate.Mount(context.Background(), domainauth.AnyRole())
	defer m.Close()

	assert.Equal(t, domainauth.Loading(), m.Decision())
	assert.NotEmpty(t, m.ID())

	first, err := m.Authorize(context.Background(), cookie("stu"))
	require.NoError(t, err)
	second, err := m.Authorize(context.Background(), cookie("someone-else"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, f.authority.Calls())
}

func TestMount_CloseDiscardsLateResult(t *testing.T) {
	f := newGateFixture(map[string]string{"stu": "STUDENT"})
	f.authority.Release = make(chan struct{})
	cred := cookie("stu")

	m := f.gate.Mount(context.Background(), domainauth.AnyRole())
	result := make(chan error, 1)
	go func() {
		_, err := m.Authorize(context.Background(), cred)
		result <- err
	}()
	require.Eventually(t, func() bool { return f.authority.Calls() == 1 }, time.Second, time.Millisecond)

	m.Close()
	assert.ErrorIs(t, <-result, ErrMountClosed)

	close(f.authority.Release)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, domainauth.Loading(), m.Decision())
	assert.False(t, f.advisory.Has(cred.Fingerprint()))
	assert.Zero(t, f.metrics.CountOf("auth.decision", nil))
}

func TestMount_CallerContextCancelled(t *testing.T) {
	f := newGateFixture(map[string]string{"stu": "STUDENT"})
	f.authority.Release = make(chan struct{})
	defer close(f.authority.Release)

	m := f.gate.Mount(context.Background(), domainauth.AnyRole())
	defer m.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	d, err := m.Authorize(ctx, cookie("stu"))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, domainauth.DecisionLoading, d.State)
}

func TestAccessGate_ConcurrentMountsShareOneVerification(t *testing.T) {
	f := newGateFixture(map[string]string{"fac": "FACULTY"})
	f.authority.Release = make(chan struct{})
	cred := cookie("fac")

	mounts := []*Mount{
		f.gate.Mount(context.Background(), domainauth.NewRoleSet(domainauth.RoleFaculty)),
		f.gate.Mount(context.Background(), domainauth.NewRoleSet(domainauth.RoleStudent)),
	}
	decisions := make([]domainauth.AccessDecision, len(mounts))
	var wg sync.WaitGroup
	for i, m := range mounts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer m.Close()
			d, err := m.Authorize(context.Background(), cred)
			assert.NoError(t, err)
			decisions[i] = d
		}()
	}

	require.Eventually(t, func() bool { return f.authority.Calls() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(f.authority.Release)
	wg.Wait()

	assert.EqualValues(t, 1, f.authority.Calls())
	assert.Equal(t, domainauth.DecisionGranted, decisions[0].State)
	assert.Equal(t, domainauth.Denied(domainauth.ReasonRoleMismatch), decisions[1])
}
