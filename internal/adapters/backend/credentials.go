package backend

import (
	"net/http"
	"net/http/cookiejar"
	"strings"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
)

// httpClient returns a client carrying cred in the deployment's strategy.
// A nil cred yields an anonymous client with a fresh jar so that login
// responses can be inspected for the session cookie.
func (c *Client) httpClient(cred *domainauth.Credential) (*http.Client, error) {
	jar, err := c.newJar()
	if err != nil {
		return nil, err
	}
	hc := &http.Client{Transport: c.transport, Jar: jar}
	if cred == nil {
		return hc, nil
	}
	if cred.Empty() {
		return nil, apperrors.Authentication("no credential presented")
	}
	if cred.Kind != c.strategy {
		return nil, apperrors.Authentication("credential kind does not match the deployment strategy")
	}

	switch c.strategy {
	case domainauth.CredentialBearer:
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cred.Value, TokenType: "Bearer"})
		hc.Transport = &oauth2.Transport{Source: src, Base: c.transport}
	default:
		jar.SetCookies(c.base, []*http.Cookie{{
			Name:  c.cookieName,
			Value: cred.Value,
			Path:  "/",
		}})
	}
	return hc, nil
}

func (c *Client) newJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "create cookie jar")
	}
	return jar, nil
}

// sessionCookie reads the session cookie the backend set on hc's jar.
func (c *Client) sessionCookie(hc *http.Client) string {
	if hc.Jar == nil {
		return ""
	}
	for _, ck := range hc.Jar.Cookies(c.base) {
		if ck.Name == c.cookieName {
			return ck.Value
		}
	}
	return ""
}

// BearerFromHeader extracts a bearer token from an Authorization header value.
func BearerFromHeader(value string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(value), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
