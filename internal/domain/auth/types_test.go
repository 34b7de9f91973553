package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{"STUDENT", RoleStudent},
		{"student", RoleStudent},
		{"  Teacher ", RoleFaculty},
		{"faculty", RoleFaculty},
		{"College", RoleCollegeAdmin},
		{"college-admin", RoleCollegeAdmin},
		{"College Admin", RoleCollegeAdmin},
		{"admin", RoleSystemAdmin},
		{"system_admin", RoleSystemAdmin},
		{"System-Admin", RoleSystemAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, raw := range []string{"teacher", "College", " admin", "STUDENT", "college admin"} {
		once, err := Normalize(raw)
		require.NoError(t, err)
		twice, err := Normalize(string(once))
		require.NoError(t, err)
		assert.Equal(t, once, twice, "normalize(normalize(%q))", raw)
	}
}

func TestNormalize_Unknown(t *testing.T) {
	for _, raw := range []string{"Principal", "", "   ", "guest", "STUDENTS"} {
		t.Run(raw, func(t *testing.T) {
			got, err := Normalize(raw)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, apperrors.IsUnknownRole(err))
		})
	}
}

func TestParseRoleSet(t *testing.T) {
	set, err := ParseRoleSet("teacher", "college", "FACULTY")
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains(RoleFaculty))
	assert.True(t, set.Contains(RoleCollegeAdmin))
	assert.False(t, set.Contains(RoleStudent))
	assert.Equal(t, []Role{RoleCollegeAdmin, RoleFaculty}, set.Roles())

	_, err = ParseRoleSet("student", "principal")
	assert.True(t, apperrors.IsUnknownRole(err))
}

func TestAnyRole(t *testing.T) {
	set := AnyRole()
	for _, r := range AllRoles() {
		assert.True(t, set.Contains(r), r)
	}
	assert.False(t, set.Contains(Role("GUEST")))
}

func TestCredential_Fingerprint(t *testing.T) {
	a := Credential{Kind: CredentialCookie, Value: "tok-1"}
	b := Credential{Kind: CredentialCookie, Value: "tok-2"}
	c := Credential{Kind: CredentialBearer, Value: "tok-1"}

	assert.Equal(t, a.Fingerprint(), a.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)
	assert.NotContains(t, a.Fingerprint(), "tok-1")
	assert.Len(t, a.ShortFingerprint(), 12)
	assert.True(t, Credential{Kind: CredentialCookie, Value: " "}.Empty())
}

func TestAccessDecision(t *testing.T) {
	assert.False(t, Loading().IsTerminal())

	id := Identity{Subject: "u1", Role: RoleStudent, VerifiedAt: time.Now()}
	granted := Granted(id)
	assert.True(t, granted.IsTerminal())
	assert.True(t, granted.IsGranted())
	assert.Equal(t, "u1", granted.Identity.Subject)

	denied := Denied(ReasonRoleMismatch)
	assert.True(t, denied.IsTerminal())
	assert.False(t, denied.IsGranted())
	assert.Equal(t, ReasonRoleMismatch, denied.Reason)

	assert.True(t, Unauthenticated().IsTerminal())
	assert.Nil(t, Unauthenticated().Identity)
}

func TestVerificationFailure(t *testing.T) {
	f := &VerificationFailure{Reason: FailureTimeout}
	assert.Equal(t, "verification failed (timeout)", f.Error())

	cause := apperrors.Transient("verify timed out")
	f = &VerificationFailure{Reason: FailureTimeout, Cause: cause}
	assert.ErrorIs(t, f, cause)
}
