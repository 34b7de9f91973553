package service

import (
	"errors"
	"net/url"
	"sync/atomic"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
)

// ErrNoDestination is returned for a verified role that has no dashboard.
var ErrNoDestination = errors.New("no destination for verified role")

// DefaultLoginPath is where unauthenticated and denied callers are sent.
const DefaultLoginPath = "/auth/login"

// DefaultHomes maps each role to its dashboard.
func DefaultHomes() map[domainauth.Role]string {
	return map[domainauth.Role]string{
		domainauth.RoleStudent:      "/student/dashboard",
		domainauth.RoleFaculty:      "/faculty/dashboard",
		domainauth.RoleCollegeAdmin: "/college/dashboard",
		domainauth.RoleSystemAdmin:  "/admin/dashboard",
	}
}

// Destination is a navigation target.
type Destination struct {
	Path   string `json:"path"`
	Reason string `json:"reason,omitempty"`
}

// URL renders the destination with its reason as a query parameter.
func (d Destination) URL() string {
	if d.Reason == "" {
		return d.Path
	}
	return d.Path + "?" + url.Values{"reason": []string{d.Reason}}.Encode()
}

// Latch fires at most once.
type Latch struct {
	fired atomic.Bool
}

// NewLatch returns an unfired latch.
func NewLatch() *Latch { return &Latch{} }

// Fire reports whether this call fired the latch.
func (l *Latch) Fire() bool { return l.fired.CompareAndSwap(false, true) }

// Fired reports whether the latch has fired.
func (l *Latch) Fired() bool { return l.fired.Load() }

// RedirectRouterOptions configures a RedirectRouter.
type RedirectRouterOptions struct {
	Homes     map[domainauth.Role]string
	LoginPath string
}

// RedirectRouter maps settled access decisions to destinations.
type RedirectRouter struct {
	homes     map[domainauth.Role]string
	loginPath string
}

// NewRedirectRouter constructs a RedirectRouter.
func NewRedirectRouter(opts RedirectRouterOptions) *RedirectRouter {
	homes := opts.Homes
	if homes == nil {
		homes = DefaultHomes()
	}
	login := opts.LoginPath
	if login == "" {
		login = DefaultLoginPath
	}
	return &RedirectRouter{homes: homes, loginPath: login}
}

// LoginPath is where rejected callers are sent.
func (r *RedirectRouter) LoginPath() string { return r.loginPath }

// Home returns the dashboard for role.
func (r *RedirectRouter) Home(role domainauth.Role) (string, bool) {
	p, ok := r.homes[role]
	return p, ok && p != ""
}

// Resolve returns where the decision should navigate, and false when it
// should not navigate at all. A granted caller is only redirected in a login
// context; elsewhere they stay on the view they asked for.
func (r *RedirectRouter) Resolve(d domainauth.AccessDecision, loginContext bool) (Destination, bool, error) {
	switch d.State {
	case domainauth.DecisionGranted:
		if !loginContext || d.Identity == nil {
			return Destination{}, false, nil
		}
		home, ok := r.Home(d.Identity.Role)
		if !ok {
			return Destination{}, false, ErrNoDestination
		}
		return Destination{Path: home}, true, nil
	case domainauth.DecisionDenied:
		return Destination{Path: r.loginPath, Reason: d.Reason}, true, nil
	case domainauth.DecisionUnauthenticated:
		return Destination{Path: r.loginPath, Reason: string(domainauth.DecisionUnauthenticated)}, true, nil
	default:
		return Destination{}, false, nil
	}
}

// Issue resolves d and fires latch. It returns true only for the call that
// fired the latch; every later call is a no-op.
func (r *RedirectRouter) Issue(latch *Latch, d domainauth.AccessDecision, loginContext bool) (Destination, bool, error) {
	dest, ok, err := r.Resolve(d, loginContext)
	if err != nil || !ok {
		return Destination{}, false, err
	}
	if !latch.Fire() {
		return Destination{}, false, nil
	}
	return dest, true, nil
}
