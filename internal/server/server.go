// Package server exposes box canonicalization, transformation, merging and
// format conversion as a small JSON API with prometheus metrics.
package server

import (
	"net/http"

	"github.com/akashtjohn/boundbox/internal/config"
	"github.com/akashtjohn/boundbox/pkg/adapters"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer creates a new API server.
func NewServer(cfg config.Config, registry *adapters.Registry) *Server {
	return &Server{registry: registry, cfg: cfg}
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.healthHandler)
	mux.HandleFunc("POST /api/canonicalize", s.canonicalizeHandler)
	mux.HandleFunc("POST /api/transform", s.transformHandler)
	mux.HandleFunc("POST /api/merge", s.mergeHandler)
	mux.HandleFunc("POST /api/convert/{adapter}", s.convertHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
}

// Handler returns the routes wrapped in the metrics middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	return metricsMiddleware(mux)
}
