package auth

// Package auth contains domain-level types for session verification and access decisions.
// It is pure and free of framework/adapter concerns.

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Role represents a canonical portal role. Raw role strings must go through
// Normalize before they are compared with a Role.
type Role string

const (
	RoleStudent      Role = "STUDENT"
	RoleFaculty      Role = "FACULTY"
	RoleCollegeAdmin Role = "COLLEGE_ADMIN"
	RoleSystemAdmin  Role = "SYSTEM_ADMIN"
)

// AllRoles returns every canonical role.
func AllRoles() []Role {
	return []Role{RoleStudent, RoleFaculty, RoleCollegeAdmin, RoleSystemAdmin}
}

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleCollegeAdmin, RoleSystemAdmin:
		return true
	default:
		return false
	}
}

// CredentialKind identifies how a credential travels to the backend.
type CredentialKind string

const (
	CredentialCookie CredentialKind = "cookie"
	CredentialBearer CredentialKind = "bearer"
)

// Credential is whatever the transport carries for the caller. The raw value is
// never logged or used as a map key; use Fingerprint.
type Credential struct {
	Kind  CredentialKind
	Value string
}

// Empty reports whether the credential carries no value.
func (c Credential) Empty() bool { return strings.TrimSpace(c.Value) == "" }

// Fingerprint returns a stable, non-reversible identifier for the credential.
func (c Credential) Fingerprint() string {
	sum := sha256.Sum256([]byte(string(c.Kind) + ":" + c.Value))
	return hex.EncodeToString(sum[:])
}

// ShortFingerprint is the log-friendly prefix of Fingerprint.
func (c Credential) ShortFingerprint() string {
	return c.Fingerprint()[:12]
}

// Identity is the authenticated principal produced by a successful verification.
// It is held for one verification cycle only.
type Identity struct {
	Subject    string    `json:"subject"`
	Role       Role      `json:"role"`
	Email      string    `json:"email,omitempty"`
	VerifiedAt time.Time `json:"verified_at"`
}

// FailureReason classifies a failed verification.
type FailureReason string

const (
	// FailureUnauthenticated means the backend rejected the credential (401/403) or there was none.
	FailureUnauthenticated FailureReason = "unauthenticated"
	// FailureTimeout means the backend could not be reached within the verify budget.
	FailureTimeout FailureReason = "timeout"
	// FailureMalformed means the backend answered 200 with an unusable identity.
	FailureMalformed FailureReason = "malformed"
)

// VerificationFailure is returned by the session verifier instead of an Identity.
type VerificationFailure struct {
	Reason FailureReason
	Cause  error
}

func (f *VerificationFailure) Error() string {
	if f.Cause != nil {
		return "verification failed (" + string(f.Reason) + "): " + f.Cause.Error()
	}
	return "verification failed (" + string(f.Reason) + ")"
}

func (f *VerificationFailure) Unwrap() error { return f.Cause }

// Badge is the advisory role hint shown before verification completes.
// It is never consulted for an access decision.
type Badge struct {
	Role     Role      `json:"role"`
	Email    string    `json:"email,omitempty"`
	Advisory bool      `json:"advisory"`
	CachedAt time.Time `json:"cached_at"`
}

// BadgeFor builds the advisory badge for a verified identity.
func BadgeFor(id Identity) Badge {
	return Badge{Role: id.Role, Email: id.Email, Advisory: true, CachedAt: id.VerifiedAt}
}
