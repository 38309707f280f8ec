// Package server exposes the HTTP relay: chat completion, speech
// synthesis, and dispense requests forwarded on behalf of browser
// clients so API keys never leave the host.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/masonpham16/TalkDoc/internal/assistant"
	"github.com/masonpham16/TalkDoc/internal/config"
	"github.com/masonpham16/TalkDoc/internal/daemon"
	"github.com/masonpham16/TalkDoc/internal/device"
	"github.com/masonpham16/TalkDoc/internal/logging"
	"github.com/masonpham16/TalkDoc/internal/model"
)

// ChatCompleter relays a conversation and returns the reply.
type ChatCompleter interface {
	Complete(ctx context.Context, history []assistant.Message) (string, error)
}

// Synthesizer renders text as MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Dispenser rotates the dispenser to a slot.
type Dispenser interface {
	Dispense(ctx context.Context, slot model.Slot) (*device.DispenseResult, error)
}

// Server is the HTTP relay. Any of the three backends may be nil when
// its credential is not configured; the matching route then reports
// the configuration problem instead of panicking.
type Server struct {
	cfg       config.ServerConfig
	chat      ChatCompleter
	speech    Synthesizer
	dispenser Dispenser
	health    *daemon.HealthChecker
}

// New creates a relay server.
func New(cfg config.ServerConfig, chat ChatCompleter, speech Synthesizer, dispenser Dispenser) *Server {
	return &Server{
		cfg:       cfg,
		chat:      chat,
		speech:    speech,
		dispenser: dispenser,
	}
}

// SetHealthChecker enables the detailed health report. Without it the
// health route answers with the bare ok flag.
func (s *Server) SetHealthChecker(h *daemon.HealthChecker) {
	s.health = h
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.StripSlashes)

	r.Post("/chat", s.handleChat)
	r.Post("/tts", s.handleTTS)
	r.Post("/api/dispense", s.handleDispense)
	r.Get("/api/health", s.handleHealth)

	return r
}

// Run serves until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Router(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Logger().Info("relay listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("relay server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logging.Logger().Info("relay shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("relay shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
