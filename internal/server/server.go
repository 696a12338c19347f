package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/menuqr/backend/config"
)

// Server represents the HTTP server
type Server struct {
	http *http.Server
	log  *logrus.Entry
}

// New creates a new server instance around handler.
func New(cfg *config.Config, handler http.Handler, log *logrus.Entry) *Server {
	return &Server{
		http: &http.Server{
			Addr:              cfg.ListenAddr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			// generation and extraction wait on the provider
			WriteTimeout: cfg.ProviderTimeout + 30*time.Second,
			IdleTimeout:  2 * time.Minute,
		},
		log: log,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start serves until Shutdown is called. It returns nil after a graceful stop.
func (s *Server) Start() error {
	s.log.WithField("addr", s.http.Addr).Info("starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
