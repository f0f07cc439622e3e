// Package server exposes the generator to browser clients over HTTP. Live
// text is pushed to the client as server-sent events.
package server

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arin/copygen/internal/ai"
	"github.com/arin/copygen/internal/config"
	"github.com/arin/copygen/internal/generate"
	"github.com/arin/copygen/internal/logger"
	"github.com/arin/copygen/internal/variant"
)

// Options configures a Server.
type Options struct {
	Streamer ai.Streamer
	Settings config.Settings
	// Save persists settings changed through PUT /api/settings.
	Save func(config.Settings) error
	// StoredAPIKey is the credential as saved on disk. Settings.APIKey may
	// carry an environment override that must never be written back.
	StoredAPIKey string
	// AllowOrigins lists CORS origins; empty allows any origin.
	AllowOrigins []string
}

// Server wires the HTTP routes to a single generation controller.
type Server struct {
	ctrl   *generate.Controller
	save   func(config.Settings) error
	engine *gin.Engine

	mu        sync.RWMutex
	settings  config.Settings
	storedKey string
}

// New builds a server and its routes.
func New(opts Options) *Server {
	s := &Server{
		save:      opts.Save,
		settings:  opts.Settings,
		storedKey: opts.StoredAPIKey,
	}
	s.ctrl = generate.New(opts.Streamer, s.currentSettings)

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger())
	r.Use(corsMiddleware(opts.AllowOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/generate", s.handleGenerate)
	api.POST("/cancel", s.handleCancel)
	api.GET("/state", s.handleState)
	api.GET("/settings", s.handleGetSettings)
	api.PUT("/settings", s.handlePutSettings)

	s.engine = r
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) currentSettings() config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		ctx := logger.WithContext(c.Request.Context(), logger.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.FromContext(c.Request.Context()).Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// --- Generation ---

type generateRequest struct {
	Description string `json:"description"`
}

// snapshotRelay hands the latest snapshot from the controller to the SSE
// loop. Intermediate snapshots may be coalesced; the newest always wins.
type snapshotRelay struct {
	mu     sync.Mutex
	text   string
	notify chan struct{}
}

func newSnapshotRelay() *snapshotRelay {
	return &snapshotRelay{notify: make(chan struct{}, 1)}
}

func (r *snapshotRelay) OnSnapshot(text string) {
	r.mu.Lock()
	r.text = text
	r.mu.Unlock()
	select {
	case r.notify <- struct{}{}:
	default:
	}
}

func (r *snapshotRelay) OnResults([]variant.Variant) {}

func (r *snapshotRelay) latest() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation", "invalid request body: "+err.Error())
		return
	}

	relay := newSnapshotRelay()
	sess, err := s.ctrl.Start(c.Request.Context(), req.Description, relay)
	if err != nil {
		writeError(c, statusFor(err), kindFor(err), err.Error())
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("session", gin.H{"session_id": sess.ID})
	c.Stream(func(w io.Writer) bool {
		select {
		case <-relay.notify:
			c.SSEvent("snapshot", gin.H{"text": relay.latest()})
			return true
		case <-sess.Done():
			variants, err := sess.Wait()
			switch {
			case err == nil:
				c.SSEvent("result", gin.H{"text": relay.latest(), "variants": nonNil(variants)})
			case ai.IsCancelled(err):
				c.SSEvent("cancelled", gin.H{"session_id": sess.ID})
			default:
				c.SSEvent("error", gin.H{"kind": kindFor(err), "message": err.Error()})
			}
			return false
		}
	})
}

func (s *Server) handleCancel(c *gin.Context) {
	if !s.ctrl.Cancel() {
		writeError(c, http.StatusConflict, "state", "no generation in progress")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

func (s *Server) handleState(c *gin.Context) {
	resp := gin.H{
		"state":     s.ctrl.State().String(),
		"live_text": s.ctrl.LiveText(),
		"variants":  nonNil(s.ctrl.Results()),
	}
	if err := s.ctrl.Err(); err != nil {
		resp["error"] = gin.H{"kind": kindFor(err), "message": err.Error()}
	}
	c.JSON(http.StatusOK, resp)
}

// --- Settings ---

type settingsRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model" binding:"required"`
}

func settingsView(st config.Settings) gin.H {
	return gin.H{
		"endpoint":    st.Endpoint,
		"model":       st.Model,
		"api_key":     st.MaskedKey(),
		"has_api_key": st.APIKey != "",
	}
}

func (s *Server) handleGetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, settingsView(s.currentSettings()))
}

// handlePutSettings replaces the settings. An empty api_key keeps the
// current credential, since GET only ever returns it masked. In that case
// the on-disk key is what gets saved, so an environment override stays in
// memory only.
func (s *Server) handlePutSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation", "endpoint and model are required")
		return
	}

	s.mu.Lock()
	next := config.Settings{
		Endpoint: strings.TrimSpace(req.Endpoint),
		APIKey:   strings.TrimSpace(req.APIKey),
		Model:    strings.TrimSpace(req.Model),
	}
	persisted := next
	if next.APIKey == "" {
		next.APIKey = s.settings.APIKey
		persisted.APIKey = s.storedKey
	}
	if s.save != nil {
		if err := s.save(persisted); err != nil {
			s.mu.Unlock()
			logger.FromContext(c.Request.Context()).Error("saving settings", "error", err)
			writeError(c, http.StatusInternalServerError, "storage", "failed to save settings")
			return
		}
	}
	s.settings = next
	s.storedKey = persisted.APIKey
	s.mu.Unlock()

	c.JSON(http.StatusOK, settingsView(next))
}

// --- Errors ---

func writeError(c *gin.Context, status int, kind, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"kind": kind, "message": msg}})
}

func kindFor(err error) string {
	var (
		ve *ai.ValidationError
		te *ai.TransportError
	)
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &te):
		return "transport"
	case ai.IsCancelled(err):
		return "cancelled"
	default:
		return "internal"
	}
}

func statusFor(err error) int {
	var ve *ai.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func nonNil(v []variant.Variant) []variant.Variant {
	if v == nil {
		return []variant.Variant{}
	}
	return v
}
