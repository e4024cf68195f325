package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

// Server exposes /metrics and any extra routes registered with it.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// StartServer binds the port before returning, so a port already in use is
// reported to the caller, then serves in the background. Port 0 picks a free
// port; see Addr.
func StartServer(port int, routes map[string]http.Handler) (*Server, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	for pattern, h := range routes {
		mux.Handle(pattern, h)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("metrics server listen: %w", err)
	}
	s := &Server{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
		},
		ln: ln,
	}
	log := logger.WithComponent("metrics-server")
	go func() {
		log.Info("listening", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("serve failed", "error", err)
		}
	}()
	return s, nil
}

func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
