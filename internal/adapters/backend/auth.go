package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// Verify asks GET /auth/verify who owns cred. Any non-200 is a failure.
func (c *Client) Verify(ctx context.Context, cred domainauth.Credential) (ports.VerifiedPrincipal, error) {
	var out verifyResponse
	err := c.call(ctx, request{op: "verify", method: http.MethodGet, path: "/auth/verify", cred: &cred}, &out)
	if err != nil {
		// The verify endpoint answers 403 for an expired session as well.
		if apperrors.IsAuthorization(err) {
			return ports.VerifiedPrincipal{}, apperrors.Wrap(err, apperrors.ErrCodeAuthentication, "session rejected")
		}
		return ports.VerifiedPrincipal{}, err
	}
	if strings.TrimSpace(out.Role) == "" {
		return ports.VerifiedPrincipal{}, apperrors.Internal("verify response carries no role")
	}
	subject := firstID(out.UserID, out.ID)
	if subject == "" {
		subject = out.Email
	}
	return ports.VerifiedPrincipal{Subject: subject, Email: out.Email, RawRole: out.Role}, nil
}

// Login forwards credentials to /auth/login or /auth/loginAdmin and returns
// the session credential in the deployment's strategy.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (ports.LoginResult, error) {
	path := "/auth/login"
	if in.Admin {
		path = "/auth/loginAdmin"
	}
	body, err := jsonBody(loginRequest{Email: strings.TrimSpace(in.Email), Password: in.Password})
	if err != nil {
		return ports.LoginResult{}, err
	}

	hc, err := c.httpClient(nil)
	if err != nil {
		return ports.LoginResult{}, err
	}
	hc.Timeout = c.timeout

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), body)
	if err != nil {
		return ports.LoginResult{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build login request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return ports.LoginResult{}, apperrors.FromTransport(err, "login")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ports.LoginResult{}, c.statusError(resp)
	}
	defer func() { _ = resp.Body.Close() }()

	var out loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return ports.LoginResult{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode login response")
	}

	value := out.Token
	if c.strategy == domainauth.CredentialCookie {
		if v := c.cookieFromResponse(resp, hc); v != "" {
			value = v
		}
	}
	if strings.TrimSpace(value) == "" {
		return ports.LoginResult{}, apperrors.Authentication("backend issued no session credential")
	}

	email := out.Email
	if email == "" {
		email = strings.TrimSpace(in.Email)
	}
	return ports.LoginResult{
		Credential: domainauth.Credential{Kind: c.strategy, Value: value},
		RawRole:    out.Role,
		Email:      email,
		Message:    out.Message,
	}, nil
}

func (c *Client) cookieFromResponse(resp *http.Response, hc *http.Client) string {
	for _, ck := range resp.Cookies() {
		if ck.Name == c.cookieName && ck.Value != "" {
			return ck.Value
		}
	}
	return c.sessionCookie(hc)
}
