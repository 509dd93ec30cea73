package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Server exposes a gatherer on /metrics for scraping.
type Server struct {
	server   *http.Server
	listener net.Listener
	done     chan struct{}

	logger *logger.Logger
}

// StartServer binds address and serves gatherer in the background. A bind
// failure is returned immediately.
func StartServer(address string, gatherer prometheus.Gatherer, log *logger.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen metrics address %q: %w", address, err)
	}

	s := &Server{
		server: &http.Server{
			Handler:           NewRouter(gatherer),
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		listener: ln,
		done:     make(chan struct{}),
		logger:   log.WithComponent("metrics"),
	}

	go func() {
		defer close(s.done)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Err(err).Str("func", "Server.serve").Msg("metrics server stopped")
		}
	}()

	s.logger.Info().Str("func", "StartServer").Str("addr", ln.Addr().String()).Msg("serving metrics")
	return s, nil
}

// Addr is the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Shutdown stops accepting scrapes and waits for in-flight ones.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(ctx)
	<-s.done
	return err
}
