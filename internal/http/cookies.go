package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/Dinesh02121/project-portal/internal/adapters/backend"
	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
)

// DefaultSessionCookie is the name of the session cookie issued to browsers.
const DefaultSessionCookie = "token"

// CredentialSource reads the caller's credential in the deployment's strategy.
type CredentialSource struct {
	Strategy   domainauth.CredentialKind
	CookieName string
}

func (s CredentialSource) cookieName() string {
	if s.CookieName != "" {
		return s.CookieName
	}
	return DefaultSessionCookie
}

// Extract returns the request's credential. A missing credential is returned
// empty so the gate can settle it as unauthenticated.
func (s CredentialSource) Extract(r *http.Request) domainauth.Credential {
	if s.Strategy == domainauth.CredentialBearer {
		return domainauth.Credential{
			Kind:  domainauth.CredentialBearer,
			Value: backend.BearerFromHeader(r.Header.Get("Authorization")),
		}
	}
	cred := domainauth.Credential{Kind: domainauth.CredentialCookie}
	if c, err := r.Cookie(s.cookieName()); err == nil {
		cred.Value = c.Value
	}
	return cred
}

// SessionCookie writes and expires the browser session cookie.
type SessionCookie struct {
	Name   string
	Domain string
	MaxAge time.Duration
}

func (c SessionCookie) name() string {
	if c.Name != "" {
		return c.Name
	}
	return DefaultSessionCookie
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// Set writes the session cookie for value.
func (c SessionCookie) Set(w http.ResponseWriter, r *http.Request, value string) {
	ck := &http.Cookie{
		Name:     c.name(),
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
	}
	if c.MaxAge > 0 {
		ck.MaxAge = int(c.MaxAge.Seconds())
	}
	http.SetCookie(w, ck)
}

// Expire clears the session cookie. It mirrors the attributes used by Set so
// browsers match and delete it.
func (c SessionCookie) Expire(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
