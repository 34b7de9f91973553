package metrics

import (
	"time"

	obserrors "github.com/Dinesh02121/project-portal/internal/observability/errors"
	"github.com/Dinesh02121/project-portal/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// CommandMetric captures one lifecycle command for metric emission.
type CommandMetric struct {
	Command  string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitCommand emits standardised lifecycle command metrics.
func EmitCommand(sink statsd.Sink, in CommandMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"command": in.Command,
		"result":  in.Result,
	}
	addErrorTags(tags, in.Result, in.Err)

	sink.Count("project.command", 1, tags)
	if in.Duration > 0 {
		sink.Timing("project.command.duration", in.Duration, CloneTags(tags))
	}
}

// VerifyMetric captures one session verification.
type VerifyMetric struct {
	// Outcome is "ok" or the failure reason.
	Outcome  string
	Shared   bool
	Duration time.Duration
}

// EmitVerify emits session verification metrics. Shared marks callers that
// joined an in-flight verification instead of issuing their own.
func EmitVerify(sink statsd.Sink, in VerifyMetric) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"outcome": in.Outcome,
		"shared":  boolTag(in.Shared),
	}
	sink.Count("auth.verify", 1, tags)
	if in.Duration > 0 {
		sink.Timing("auth.verify.duration", in.Duration, CloneTags(tags))
	}
}

// EmitAccessDecision counts settled gate decisions by state and reason.
func EmitAccessDecision(sink statsd.Sink, state, reason string) {
	if sink == nil {
		return
	}
	tags := map[string]string{"state": state}
	if reason != "" {
		tags["reason"] = reason
	}
	sink.Count("auth.decision", 1, tags)
}

// EmitNotification counts decision notification deliveries.
func EmitNotification(sink statsd.Sink, result string, err error) {
	if sink == nil {
		return
	}
	tags := map[string]string{"result": result}
	addErrorTags(tags, result, err)
	sink.Count("notify.decision", 1, tags)
}

func addErrorTags(tags map[string]string, result string, err error) {
	if err == nil || result != ResultError {
		return
	}
	if class := obserrors.Classify(err); class != "" {
		tags["error_class"] = class
	}
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
