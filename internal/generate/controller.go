// Package generate runs one tagline generation at a time: it starts the
// stream, forwards snapshots to a display, supports cancellation and parses
// the final text into variants.
package generate

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/arin/copygen/internal/ai"
	"github.com/arin/copygen/internal/config"
	"github.com/arin/copygen/internal/logger"
	"github.com/arin/copygen/internal/variant"
)

// State is the controller's position in the generation lifecycle.
type State int

const (
	Idle State = iota
	Streaming
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Streaming:
		return "streaming"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Observer is the display side of a generation. OnSnapshot receives the
// full text so far; OnResults is called once when the stream ends
// naturally. Neither is called for a session that has been superseded or
// cancelled. Observers must not call back into the Controller.
type Observer interface {
	OnSnapshot(text string)
	OnResults(variants []variant.Variant)
}

// Controller owns at most one in-flight generation session.
type Controller struct {
	streamer ai.Streamer
	settings func() config.Settings

	mu      sync.Mutex
	state   State
	session *Session
	live    string
	results []variant.Variant
	lastErr error
}

// New creates a controller. settings is read once per Start, so the values
// used by a running session never change underneath it.
func New(streamer ai.Streamer, settings func() config.Settings) *Controller {
	return &Controller{streamer: streamer, settings: settings}
}

// Session is the handle of one generation.
type Session struct {
	ID string

	cancel   context.CancelFunc
	done     chan struct{}
	variants []variant.Variant
	err      error
}

// Done is closed when the session has ended.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session ends and returns its variants, or
// ai.ErrCancelled, or the failure that ended it.
func (s *Session) Wait() ([]variant.Variant, error) {
	<-s.done
	return s.variants, s.err
}

// Start validates the request and begins a new generation. Validation
// failures are returned before any network call. A session already in
// flight is cancelled and invalidated before the new one starts.
func (c *Controller) Start(ctx context.Context, description string, obs Observer) (*Session, error) {
	if strings.TrimSpace(description) == "" {
		return nil, &ai.ValidationError{Field: "description", Reason: "product description is empty"}
	}
	settings := c.settings()
	if err := ai.ValidateSettings(settings); err != nil {
		return nil, err
	}

	sessCtx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	sessCtx = logger.WithContext(sessCtx, logger.SessionIDKey, s.ID)

	c.mu.Lock()
	if prev := c.session; prev != nil {
		prev.cancel()
		logger.FromContext(sessCtx).Debug("superseding session", "previous", prev.ID)
	}
	c.session = s
	c.state = Streaming
	c.live = ""
	c.results = nil
	c.lastErr = nil
	c.mu.Unlock()

	logger.FromContext(sessCtx).Debug("generation started", "model", settings.Model)
	go c.run(sessCtx, s, description, settings, obs)
	return s, nil
}

// Generate starts a generation and waits for it to end.
func (c *Controller) Generate(ctx context.Context, description string, obs Observer) ([]variant.Variant, error) {
	s, err := c.Start(ctx, description, obs)
	if err != nil {
		return nil, err
	}
	return s.Wait()
}

func (c *Controller) run(ctx context.Context, s *Session, description string, settings config.Settings, obs Observer) {
	defer close(s.done)
	defer s.cancel()
	log := logger.FromContext(ctx)

	onSnapshot := func(text string) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.session != s || ctx.Err() != nil {
			return
		}
		c.live = text
		if obs != nil {
			obs.OnSnapshot(text)
		}
	}

	text, err := c.streamer.Stream(ctx, description, settings, onSnapshot)

	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.session == s
	if current {
		c.session = nil
	}

	switch {
	case err == nil && ctx.Err() == nil:
		s.variants = variant.Parse(text)
		if current {
			c.state = Completed
			c.results = s.variants
			if obs != nil {
				obs.OnResults(s.variants)
			}
		}
		log.Debug("generation completed", "variants", len(s.variants))
	case ai.IsCancelled(err) || ctx.Err() != nil:
		s.err = ai.ErrCancelled
		if current {
			c.state = Idle
		}
		log.Debug("generation cancelled")
	default:
		s.err = err
		if current {
			c.state = Failed
			c.lastErr = err
		}
		log.Error("generation failed", "error", err)
	}
}

// Cancel aborts the in-flight session. It reports false when nothing was
// running. Once Cancel returns no further snapshot from that session will
// reach its observer.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return false
	}
	c.session.cancel()
	c.session = nil
	c.state = Idle
	return true
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LiveText returns the latest snapshot of the current or last session.
func (c *Controller) LiveText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

// Results returns the variants of the last completed session.
func (c *Controller) Results() []variant.Variant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]variant.Variant(nil), c.results...)
}

// Err returns the failure of the last session, if it failed.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
