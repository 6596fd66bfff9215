// Package server runs the task HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"task-tracker/internal/api"
	"task-tracker/internal/config"
)

// Server is the task tracker HTTP server.
type Server struct {
	cfg     config.ServerConfig
	mux     *http.ServeMux
	httpSrv *http.Server
	logger  *slog.Logger
}

// New creates a Server that serves h with the given listener settings.
func New(cfg config.ServerConfig, h *api.Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	readHeaderTimeout := cfg.ReadHeaderTimeout
	if readHeaderTimeout <= 0 {
		readHeaderTimeout = 15 * time.Second
	}

	s := &Server{cfg: cfg, mux: mux, logger: logger}
	s.httpSrv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
	return s
}

// Handler returns the routed mux wrapped in middleware.
func (s *Server) Handler() http.Handler {
	return RequestID(Logging(s.logger)(s.mux))
}

// Start listens on the configured address and serves until Stop is called.
// It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpSrv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Stop is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("server listening", slog.String("addr", ln.Addr().String()))
	if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
