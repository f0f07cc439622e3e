// Package ai talks to an OpenAI-compatible chat completion endpoint and
// turns its event-stream response into growing text snapshots.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/arin/copygen/internal/config"
	"github.com/arin/copygen/internal/logger"
)

const (
	maxErrorBody   = 4096
	maxLoggedFrame = 120
)

// Client streams generations from the completion endpoint.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client. A nil httpClient gets a default one with no
// timeout: streams can be long and the caller's context is the only
// interruption mechanism.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient}
}

// Stream sends the description to the endpoint in settings and reads the
// event stream. Every non-empty fragment is appended to an accumulator and
// the whole accumulator is passed to onSnapshot. Stream returns the final
// text on [DONE] or end of body, ErrCancelled if ctx ends first, and a
// *TransportError for any HTTP or network failure.
func (c *Client) Stream(ctx context.Context, prompt string, settings config.Settings, onSnapshot SnapshotFunc) (string, error) {
	if err := ValidateSettings(settings); err != nil {
		return "", err
	}
	log := logger.FromContext(ctx)

	body, err := json.Marshal(newChatRequest(settings.Model, prompt))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, settings.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Detail: "invalid endpoint " + settings.Endpoint, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+settings.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ErrCancelled
		}
		return "", &TransportError{Detail: "could not reach " + settings.Endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &TransportError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(detail))}
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return "", &TransportError{StatusCode: resp.StatusCode, Detail: "response has no body"}
	}

	frames := newFrameReader(resp.Body)
	var acc strings.Builder
	for {
		if ctx.Err() != nil {
			return "", ErrCancelled
		}

		payload, err := frames.Next()
		if err != nil {
			if ctx.Err() != nil {
				return "", ErrCancelled
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return "", &TransportError{StatusCode: resp.StatusCode, Detail: "stream interrupted", Err: err}
		}

		if isDone(payload) {
			break
		}
		if !gjson.ValidBytes(payload) {
			log.Warn("skipping frame", "error", &MalformedFrameError{Payload: truncate(string(payload), maxLoggedFrame)})
			continue
		}

		fragment := gjson.GetBytes(payload, contentPath).String()
		if fragment == "" {
			continue
		}
		acc.WriteString(fragment)

		if ctx.Err() != nil {
			return "", ErrCancelled
		}
		if onSnapshot != nil {
			onSnapshot(acc.String())
		}
	}

	log.Debug("stream finished", "chars", acc.Len())
	return acc.String(), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "... (truncated)"
}
