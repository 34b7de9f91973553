package backend

// Package backend adapts the portal's backend-of-record REST API to the ports
// used by the gateway services.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/Dinesh02121/project-portal/internal/domain/auth"
	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
	"github.com/Dinesh02121/project-portal/internal/ports"
)

// maxErrorBody bounds how much of a failure body is read into an error message.
const maxErrorBody = 4 << 10

// Config describes how to reach the backend.
type Config struct {
	BaseURL    string
	Strategy   domainauth.CredentialKind
	CookieName string
	// Timeout bounds a single request when the caller's context has no deadline.
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// Client talks to the backend with exactly one credential strategy.
type Client struct {
	base       *url.URL
	strategy   domainauth.CredentialKind
	cookieName string
	timeout    time.Duration
	transport  http.RoundTripper
	logger     *slog.Logger
}

var (
	_ ports.IdentityAuthority = (*Client)(nil)
	_ ports.ProjectBackend    = (*Client)(nil)
	_ ports.FileStore         = (*Client)(nil)
	_ ports.AnalysisOracle    = (*Client)(nil)
)

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("backend base url is required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend base url must be absolute: %q", raw)
	}

	strategy := cfg.Strategy
	switch strategy {
	case domainauth.CredentialCookie, domainauth.CredentialBearer:
	case "":
		strategy = domainauth.CredentialCookie
	default:
		return nil, fmt.Errorf("unsupported credential strategy %q", strategy)
	}

	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = "token"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:       base,
		strategy:   strategy,
		cookieName: cookieName,
		timeout:    timeout,
		transport:  transport,
		logger:     logger.With("component", "backend"),
	}, nil
}

// Strategy returns the credential strategy of this deployment.
func (c *Client) Strategy() domainauth.CredentialKind { return c.strategy }

// request describes one backend call.
type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	cred        *domainauth.Credential
	// stream leaves the body open past the client timeout; the caller's
	// context still bounds it.
	stream bool
}

// endpoint joins the base URL with p, which is already path-escaped.
func (c *Client) endpoint(p string, q url.Values) string {
	u := *c.base
	raw := strings.TrimRight(c.base.EscapedPath(), "/") + p
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}
	u.Path, u.RawPath = decoded, raw
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// do performs the call and returns the response for 2xx statuses. Any other
// status is mapped onto the error taxonomy and the body is closed.
func (c *Client) do(ctx context.Context, r request) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r.path, r.query), r.body)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "build %s request", r.op)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	hc, err := c.httpClient(r.cred)
	if err != nil {
		return nil, err
	}
	if !r.stream {
		hc.Timeout = c.timeout
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "backend request failed", "op", r.op, "duration", time.Since(start), "error", err)
		return nil, apperrors.FromTransport(err, r.op)
	}
	c.logger.DebugContext(ctx, "backend request", "op", r.op, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp)
	}
	return resp, nil
}

func (c *Client) statusError(resp *http.Response) error {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	closeErr := resp.Body.Close()
	appErr := apperrors.FromStatus(resp.StatusCode, errorMessage(body))
	if readErr != nil || closeErr != nil {
		appErr.Cause = errors.Join(readErr, closeErr)
	}
	return appErr
}

// errorMessage extracts a message from either a plain-text body or a JSON
// object carrying message/error.
func errorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return string(trimmed)
	}
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return string(trimmed)
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}

// call performs r and decodes a JSON body into out when out is non-nil.
func (c *Client) call(ctx context.Context, r request, out any) error {
	resp, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return apperrors.FromTransport(ctxErr, r.op)
		}
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "decode %s response", r.op)
	}
	return nil
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
	}
	return bytes.NewReader(b), nil
}
