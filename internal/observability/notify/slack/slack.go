package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Dinesh02121/project-portal/internal/observability/notify"
)

// Config captures the subset of Slack webhook behaviour we need.
type Config struct {
	WebhookURL       string
	Channel          string
	Username         string
	Timeout          time.Duration
	RetryLimit       int
	Client           *http.Client
	ProjectURLPrefix string
}

// Client delivers project decision notifications to a Slack webhook.
type Client struct {
	webhookURL    string
	channel       string
	username      string
	retryLimit    int
	projectPrefix string
	client        *http.Client
}

var _ notify.Sink = (*Client)(nil)

// NewClient builds a Slack webhook client.
func NewClient(cfg Config) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.New("slack webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		webhookURL:    webhookURL,
		channel:       strings.TrimSpace(cfg.Channel),
		username:      fallbackString(strings.TrimSpace(cfg.Username), "project-portal"),
		retryLimit:    max(cfg.RetryLimit, 0),
		projectPrefix: strings.TrimSpace(cfg.ProjectURLPrefix),
		client:        hc,
	}, nil
}

// SendDecision posts a formatted decision message, retrying with linear backoff.
func (c *Client) SendDecision(ctx context.Context, payload notify.DecisionPayload) error {
	body, err := json.Marshal(c.formatMessage(payload))
	if err != nil {
		return fmt.Errorf("encode slack payload: %w", err)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		if lastErr = c.post(ctx, body); lastErr == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * 200 * time.Millisecond)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

func (c *Client) formatMessage(payload notify.DecisionPayload) map[string]any {
	occurred := payload.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	var text strings.Builder
	text.WriteString("*Project ")
	text.WriteString(fallbackString(payload.Command, "decision"))
	text.WriteString("*")
	if payload.ProjectID != "" {
		text.WriteString(" `")
		text.WriteString(escapeSlackText(payload.ProjectID))
		text.WriteByte('`')
	}
	text.WriteByte('\n')

	for _, field := range []struct{ label, value string }{
		{"Project", c.projectValue(payload.ProjectID, payload.ProjectTitle)},
		{"Outcome", payload.Outcome},
		{"Status", payload.Status},
		{"Decided by", actorValue(payload.ActorEmail, payload.ActorRole)},
	} {
		appendField(&text, field.label, field.value)
	}
	appendMetadata(&text, payload.Metadata)
	text.WriteString("• Timestamp: ")
	text.WriteString(occurred.UTC().Format(time.RFC3339))

	msg := map[string]any{
		"text":     text.String(),
		"username": c.username,
	}
	if c.channel != "" {
		msg["channel"] = c.channel
	}
	return msg
}

func actorValue(email, role string) string {
	email, role = escapeSlackText(strings.TrimSpace(email)), strings.TrimSpace(role)
	switch {
	case email != "" && role != "":
		return fmt.Sprintf("%s (%s)", email, role)
	case email != "":
		return email
	default:
		return role
	}
}

func (c *Client) projectValue(id, title string) string {
	rawID := strings.TrimSpace(id)
	name := escapeSlackText(strings.TrimSpace(title))
	if link := c.projectLink(rawID); link != "" {
		return fmt.Sprintf("<%s|%s>", link, fallbackString(name, escapeSlackText(rawID)))
	}
	return name
}

func (c *Client) projectLink(id string) string {
	if id == "" || c.projectPrefix == "" {
		return ""
	}
	u, err := url.Parse(c.projectPrefix)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	link, err := url.JoinPath(u.String(), id)
	if err != nil {
		return ""
	}
	return link
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	return consumeResponse(resp)
}

// consumeResponse drains and closes resp, reporting non-2xx statuses.
func consumeResponse(resp *http.Response) error {
	var respBody []byte
	var readErr error
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, readErr = io.Copy(io.Discard, resp.Body)
	} else {
		respBody, readErr = io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	}
	closeErr := resp.Body.Close()

	if readErr != nil || closeErr != nil {
		var errs []error
		if readErr != nil {
			errs = append(errs, fmt.Errorf("read slack response: %w", readErr))
		}
		if closeErr != nil {
			errs = append(errs, fmt.Errorf("close response body: %w", closeErr))
		}
		return errors.Join(errs...)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	return nil
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func escapeSlackText(value string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(value)
}

func appendField(text *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(text, "• %s: %s\n", label, value)
}

func appendMetadata(text *strings.Builder, metadata map[string]string) {
	if len(metadata) == 0 {
		return
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	text.WriteString("• Metadata:\n")
	for _, k := range keys {
		fmt.Fprintf(text, "    • %s: %s\n", k, metadata[k])
	}
}
