package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/unionprice/union-price-api/internal/dependency"
	"github.com/unionprice/union-price-api/pkg/config"
	"github.com/unionprice/union-price-api/pkg/logger"
)

type Server struct {
	HTTPServer   *http.Server
	Config       *config.Config
	Dependencies *dependency.Dependencies
	Logger       *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	deps, err := dependency.NewDependencies(cfg, log)
	if err != nil {
		return nil, err
	}
	return NewWithDependencies(cfg, deps, log), nil
}

// NewWithDependencies builds the server around already wired dependencies.
func NewWithDependencies(cfg *config.Config, deps *dependency.Dependencies, log *logger.Logger) *Server {
	serv := &Server{
		Config:       cfg,
		Dependencies: deps,
		Logger:       log,
	}

	// builds router
	mux := serv.routes()
	serv.HTTPServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return serv
}

func (s *Server) Handler() http.Handler {
	return s.HTTPServer.Handler
}

func (s *Server) Run() error {
	s.Logger.Infow("[SERVER] running -> ", "address", s.HTTPServer.Addr, "mode", s.Dependencies.EstimateService.Mode())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	// Run Server in the background
	go func() {
		if err := s.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Listen for the interrupt signal
	select {
	case err := <-errCh:
		s.Logger.Errorw("[SERVER] failed to serve -> ", "error", err)
		return err
	case <-ctx.Done():
		s.Logger.Info("[SERVER] shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
	defer cancel()

	// Stop http server
	if err := s.HTTPServer.Shutdown(shutCtx); err != nil {
		s.Logger.Errorw("[SERVER] shutdown failed -> ", "error", err)
		return err
	}

	s.Logger.Info("[SERVER] shutdown complete.")
	return nil
}
