package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arin/copygen/internal/ai"
	"github.com/arin/copygen/internal/config"
	"github.com/arin/copygen/internal/logger"
	"github.com/arin/copygen/internal/server"
)

var (
	serveAddr    string
	logFormat    string
	allowOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generator over HTTP for browser clients",
	Long: `Start an HTTP server that streams generations to browsers as
server-sent events.

Routes:
  POST /api/generate   {"description": "..."}  -> text/event-stream
  POST /api/cancel     cancel the running generation
  GET  /api/state      current state, live text and last results
  GET  /api/settings   settings with the API key masked
  PUT  /api/settings   save endpoint, model and (optionally) api_key

All clients share one generation session: a new POST /api/generate
cancels the running one, whose stream ends with a "cancelled" event.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		logger.Init(level, logFormat, os.Stderr)
		gin.SetMode(gin.ReleaseMode)

		settings, err := config.Load()
		if err != nil {
			return err
		}

		stored, err := config.LoadFile()
		if err != nil {
			return err
		}

		srv := server.New(server.Options{
			Streamer:     ai.NewClient(nil),
			Settings:     *settings,
			Save:         config.Save,
			StoredAPIKey: stored.APIKey,
			AllowOrigins: allowOrigins,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Requests inherit ctx so running generations end on shutdown.
		httpServer := &http.Server{
			Addr:              serveAddr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			color.New(color.FgCyan).Fprintf(os.Stderr, "  copygen listening on %s\n", serveAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8787", "Address to listen on")
	serveCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	serveCmd.Flags().StringSliceVar(&allowOrigins, "allow-origin", nil, "Allowed CORS origin (repeatable; default any)")
}
