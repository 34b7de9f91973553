package errors

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// FromStatus maps a non-2xx backend response to an AppError.
// The backend answers failures with a plain error string in the body; it is kept
// as the message when present.
func FromStatus(status int, body string) *AppError {
	msg := strings.TrimSpace(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "unexpected backend status"
	}

	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return Validation(msg)
	case status == http.StatusUnauthorized:
		return Authentication(msg)
	case status == http.StatusForbidden:
		return Authorization(msg)
	case status == http.StatusNotFound:
		return NotFound(msg)
	case status == http.StatusConflict:
		return Validation(msg)
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests, status >= 500:
		return Transient(msg)
	default:
		return Internal(msg)
	}
}

// FromTransport maps a transport-level failure (the request never produced a
// response) to an AppError. Caller cancellation is returned unchanged so that
// an abandoned request is never mistaken for a retryable failure.
func FromTransport(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrapf(err, ErrCodeTransient, "%s timed out", op)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Wrapf(err, ErrCodeTransient, "%s timed out", op)
	}
	return Wrapf(err, ErrCodeTransient, "%s failed", op)
}
