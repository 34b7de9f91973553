package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dinesh02121/project-portal/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestFormatMessageIncludesDecisionFields(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL:       "https://hooks.slack.com/services/test",
		Channel:          "#reviews",
		Username:         "bot",
		ProjectURLPrefix: "https://portal.example.edu/projects",
	})
	require.NoError(t, err)

	msg := client.formatMessage(notify.DecisionPayload{
		ProjectID:    "17",
		ProjectTitle: "Compilers & <Friends>",
		Command:      "decide",
		Outcome:      "ACCEPT",
		Status:       "IN_PROGRESS",
		ActorEmail:   "prof@example.edu",
		ActorRole:    "FACULTY",
		OccurredAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Metadata:     map[string]string{"previous_status": "PENDING"},
	})

	assert.Equal(t, "bot", msg["username"])
	assert.Equal(t, "#reviews", msg["channel"])

	text, ok := msg["text"].(string)
	require.True(t, ok)
	for _, want := range []string{
		"*Project decide* `17`",
		"<https://portal.example.edu/projects/17|Compilers &amp; &lt;Friends&gt;>",
		"Outcome: ACCEPT",
		"Status: IN_PROGRESS",
		"Decided by: prof@example.edu (FACULTY)",
		"previous_status: PENDING",
		"2026-03-01T12:00:00Z",
	} {
		assert.Contains(t, text, want)
	}
}

func TestProjectValueWithoutUsablePrefix(t *testing.T) {
	client, err := NewClient(Config{WebhookURL: "https://hooks.slack.com/services/test", ProjectURLPrefix: "not a url"})
	require.NoError(t, err)

	assert.Equal(t, "Thesis", client.projectValue("3", "Thesis"))
	assert.Empty(t, client.projectValue("", ""))
}

func TestSendDecisionRetriesUntilSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			return
		}
		if hits.Add(1) == 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client, err := NewClient(Config{WebhookURL: srv.URL, RetryLimit: 1})
	require.NoError(t, err)

	require.NoError(t, client.SendDecision(context.Background(), notify.DecisionPayload{ProjectID: "1", Outcome: "REJECT"}))
	assert.EqualValues(t, 2, hits.Load())
}

func TestSendDecisionReportsFinalFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient(Config{WebhookURL: srv.URL})
	require.NoError(t, err)

	err = client.SendDecision(context.Background(), notify.DecisionPayload{ProjectID: "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_payload")
}
