package service

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
)

func grantedAs(role domainauth.Role) domainauth.AccessDecision {
	return domainauth.Granted(domainauth.Identity{Subject: "1", Role: role})
}

func TestRedirectRouter_Resolve(t *testing.T) {
	router := NewRedirectRouter(RedirectRouterOptions{})

	tests := []struct {
		name         string
		decision     domainauth.AccessDecision
		loginContext bool
		wantOK       bool
		wantURL      string
	}{
		{"student home", grantedAs(domainauth.RoleStudent), true, true, "/student/dashboard"},
		{"faculty home", grantedAs(domainauth.RoleFaculty), true, true, "/faculty/dashboard"},
		{"college home", grantedAs(domainauth.RoleCollegeAdmin), true, true, "/college/dashboard"},
		{"admin home", grantedAs(domainauth.RoleSystemAdmin), true, true, "/admin/dashboard"},
		{"granted outside login stays put", grantedAs(domainauth.RoleStudent), false, false, ""},
		{"denied goes to login", domainauth.Denied(domainauth.ReasonRoleMismatch), false, true, "/auth/login?reason=role_mismatch"},
		{"unauthenticated goes to login", domainauth.Unauthenticated(), true, true, "/auth/login?reason=unauthenticated"},
		{"loading waits", domainauth.Loading(), true, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest, ok, err := router.Resolve(tt.decision, tt.loginContext)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantURL, dest.URL())
			}
		})
	}
}

func TestRedirectRouter_VerifiedRoleWithoutHome(t *testing.T) {
	router := NewRedirectRouter(RedirectRouterOptions{
		Homes: map[domainauth.Role]string{domainauth.RoleStudent: "/student/dashboard"},
	})

	_, ok, err := router.Resolve(grantedAs(domainauth.RoleFaculty), true)

	assert.ErrorIs(t, err, ErrNoDestination)
	assert.False(t, ok)
}

func TestRedirectRouter_IssueIsSingleShot(t *testing.T) {
	router := NewRedirectRouter(RedirectRouterOptions{})
	latch := NewLatch()
	d := domainauth.Unauthenticated()

	dest, ok, err := router.Issue(latch, d, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/auth/login", dest.Path)

	for range 5 {
		again, ok, err := router.Issue(latch, d, false)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, again)
	}
	assert.True(t, latch.Fired())
}

func TestRedirectRouter_IssueDoesNotFireWithoutRedirect(t *testing.T) {
	router := NewRedirectRouter(RedirectRouterOptions{})
	latch := NewLatch()

	_, ok, err := router.Issue(latch, domainauth.Loading(), true)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, latch.Fired())

	_, ok, err = router.Issue(latch, grantedAs(domainauth.RoleStudent), true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLatch_FiresExactlyOnceUnderContention(t *testing.T) {
	latch := NewLatch()
	var fired atomic.Int32
	var wg sync.WaitGroup
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if latch.Fire() {
				fired.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, fired.Load())
}
