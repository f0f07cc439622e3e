package ai

import (
	"context"
	"strings"

	"github.com/arin/copygen/internal/config"
)

// SnapshotFunc receives the full text accumulated so far, never a delta.
type SnapshotFunc func(text string)

// Streamer is the interface any completion backend must implement.
// Stream blocks until the response ends and returns the final text.
type Streamer interface {
	Stream(ctx context.Context, prompt string, settings config.Settings, onSnapshot SnapshotFunc) (string, error)
}

// ValidateSettings checks that every field needed for a request is set.
func ValidateSettings(s config.Settings) error {
	switch {
	case strings.TrimSpace(s.APIKey) == "":
		return &ValidationError{Field: "api_key", Reason: "API key is not set (run: copygen config set-key <key>)"}
	case strings.TrimSpace(s.Endpoint) == "":
		return &ValidationError{Field: "endpoint", Reason: "endpoint URL is not set"}
	case strings.TrimSpace(s.Model) == "":
		return &ValidationError{Field: "model", Reason: "model is not set"}
	}
	return nil
}
