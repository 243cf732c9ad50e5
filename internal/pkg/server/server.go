package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zonagamer/console/internal/pkg/logger"
)

// StatusServer serves the local status endpoints while the alert console is
// running. It binds to localhost only and shuts down gracefully with the
// console.
type StatusServer struct {
	echo *echo.Echo
	port int
}

// NewStatusServer creates a status server on the given localhost port
func NewStatusServer(e *echo.Echo, port int) *StatusServer {
	e.HideBanner = true
	e.HidePort = true
	return &StatusServer{
		echo: e,
		port: port,
	}
}

// Start starts serving in the background. Startup failure is logged, not
// fatal: the status surface is an observability aid, never a requirement.
func (s *StatusServer) Start() {
	go func() {
		addr := fmt.Sprintf("127.0.0.1:%d", s.port)
		logger.Info("status server listening", logger.String("address", addr))

		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Warn("status server stopped", logger.Err(err))
		}
	}()
}

// Shutdown gracefully shuts down the server
func (s *StatusServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		logger.Error("status server forced to shutdown", logger.Err(err))
		return err
	}

	return nil
}

// ShutdownManager runs registered cleanup functions when the console exits
type ShutdownManager struct {
	functions []func(context.Context) error
}

// NewShutdownManager creates a new shutdown manager
func NewShutdownManager() *ShutdownManager {
	return &ShutdownManager{
		functions: make([]func(context.Context) error, 0),
	}
}

// Register adds a cleanup function to be called during shutdown
func (sm *ShutdownManager) Register(fn func(context.Context) error) {
	sm.functions = append(sm.functions, fn)
}

// Shutdown executes all registered cleanup functions in order. A failing
// component does not stop the rest from shutting down.
func (sm *ShutdownManager) Shutdown(ctx context.Context) error {
	logger.Info("shutting down components", logger.Int("components", len(sm.functions)))

	for i, fn := range sm.functions {
		if err := fn(ctx); err != nil {
			logger.Error("component shutdown failed",
				logger.Int("component", i),
				logger.Err(err))
		}
	}

	return nil
}
