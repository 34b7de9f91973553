package auth

// DecisionState is the tag of an AccessDecision.
type DecisionState string

const (
	DecisionLoading         DecisionState = "loading"
	DecisionGranted         DecisionState = "granted"
	DecisionDenied          DecisionState = "denied"
	DecisionUnauthenticated DecisionState = "unauthenticated"
)

// Reasons carried by a Denied decision.
const (
	ReasonRoleMismatch = "role_mismatch"
	ReasonUnreachable  = "unreachable"
	ReasonUnknownRole  = "unknown_role"
)

// AccessDecision is the outcome of one access check. Exactly one state holds;
// Identity is set only for Granted and Reason only for Denied.
type AccessDecision struct {
	State    DecisionState `json:"state"`
	Identity *Identity     `json:"identity,omitempty"`
	Reason   string        `json:"reason,omitempty"`
}

// Loading returns the initial decision of every mount.
func Loading() AccessDecision { return AccessDecision{State: DecisionLoading} }

// Granted returns a decision carrying the verified identity.
func Granted(id Identity) AccessDecision {
	return AccessDecision{State: DecisionGranted, Identity: &id}
}

// Denied returns a decision with a reason for display.
func Denied(reason string) AccessDecision {
	return AccessDecision{State: DecisionDenied, Reason: reason}
}

// Unauthenticated returns the decision for a missing or rejected credential.
func Unauthenticated() AccessDecision {
	return AccessDecision{State: DecisionUnauthenticated}
}

// IsTerminal reports whether the decision has settled.
func (d AccessDecision) IsTerminal() bool { return d.State != DecisionLoading && d.State != "" }

// IsGranted reports whether access was granted.
func (d AccessDecision) IsGranted() bool { return d.State == DecisionGranted && d.Identity != nil }
