package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/cortex-kb/cortex/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may keep running
// once the server is asked to stop.
const shutdownTimeout = 10 * time.Second

// Server serves the Cortex HTTP API.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a Server for the given address and handler.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Run blocks serving requests until the context is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown: %v", err)
		}
	}()

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
