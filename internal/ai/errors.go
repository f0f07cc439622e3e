package ai

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the caller's context ends a generation.
// It is an outcome, not a failure, and is never wrapped in a TransportError.
var ErrCancelled = errors.New("generation cancelled")

// ValidationError reports input that was rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportError covers non-success statuses, missing bodies and network
// failures while talking to the completion endpoint.
type TransportError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *TransportError) Error() string {
	msg := "transport error"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("API error (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedFrameError describes a stream frame whose payload is not JSON.
// It is logged and the frame skipped; it never ends a stream.
type MalformedFrameError struct {
	Payload string
}

func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("malformed frame payload %q", e.Payload)
}

// IsCancelled reports whether err is the cancellation outcome.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
