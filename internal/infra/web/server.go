// File: internal/infra/web/server.go
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server is the operational HTTP surface: liveness and Prometheus metrics.
type Server struct {
	log *zerolog.Logger
}

func NewServer(logger *zerolog.Logger) *Server {
	compLog := logger.With().Str("component", "AdminServer").Logger()
	return &Server{log: &compLog}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
