// Package server wires the riverd HTTP surface: the streaming
// endpoint plus the introspection and health routes.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getriverd/riverd/pkg/config"
	"github.com/getriverd/riverd/pkg/generator"
	"github.com/getriverd/riverd/pkg/httputil"
	"github.com/getriverd/riverd/pkg/logging"
	"github.com/getriverd/riverd/pkg/stream"
)

// Server is the riverd HTTP server.
type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	registry *generator.Registry
	streams  *stream.Handler
	handler  http.Handler

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
	running    bool
	startTime  time.Time
}

// Option is a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Server from the given configuration. A nil cfg uses
// the defaults.
func New(cfg *config.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:      cfg,
		log:      logging.Nop(),
		registry: generator.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.streams = stream.NewHandler(s.registry, stream.Options{
		MaxConnections:    cfg.MaxConnections,
		KeepaliveInterval: time.Duration(cfg.KeepaliveInterval) * time.Second,
		MaxEvents:         cfg.MaxEvents,
		Logger:            s.log,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.streams.ServeHTTP)
	mux.HandleFunc("GET /ws", s.streams.ServeWS)
	mux.HandleFunc("GET /substitutions", s.handleSubstitutions)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /connections", s.handleConnections)
	s.handler = mux

	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Streams returns the stream handler.
func (s *Server) Streams() *stream.Handler {
	return s.streams
}

// Start binds the listener and begins serving in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	listener, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddr, err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.running = true
	s.startTime = time.Now()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server error", "error", err)
		}
	}()

	s.log.Info("server started", "addr", listener.Addr().String())
	return nil
}

// Addr returns the bound listener address, or the configured address
// before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.ListenAddr
}

// Stop shuts the server down, draining in-flight streams within the
// configured timeout.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	// Cancel active sessions so Shutdown's drain completes quickly.
	s.streams.Manager().CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(s.cfg.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.log.Info("server stopped", "uptime", time.Since(s.startTime).Round(time.Second).String())
	return nil
}

// handleSubstitutions returns the registered placeholder keys.
func (s *Server) handleSubstitutions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, s.registry.Keys())
}

// handleHealth returns a static OK payload.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, map[string]string{"status": "ok"})
}

// handleConnections lists active streams.
func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, s.streams.Manager().Infos())
}
