// Package web provides the JSON HTTP API for the registry.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/blackroad/terramod/app"
)

// Handler provides the registry HTTP endpoints.
type Handler struct {
	registry *app.Registry
	logger   zerolog.Logger

	metricsEnabled bool
	metricsPath    string
}

// Config holds configuration for the web handler.
type Config struct {
	MetricsEnabled bool
	MetricsPath    string
}

// NewHandler creates a new web handler.
func NewHandler(registry *app.Registry, logger zerolog.Logger, cfg Config) *Handler {
	path := cfg.MetricsPath
	if path == "" {
		path = "/metrics"
	}
	return &Handler{
		registry:       registry,
		logger:         logger.With().Str("component", "web").Logger(),
		metricsEnabled: cfg.MetricsEnabled,
		metricsPath:    path,
	}
}

// Router builds the chi router with all registry endpoints.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", h.Health)

	r.Get("/modules", h.ListModules)
	r.Post("/modules", h.RegisterModule)
	r.Get("/modules/{id}", h.GetModule)
	r.Delete("/modules/{id}", h.DeleteModule)
	r.Post("/modules/{id}/render", h.RenderModule)
	r.Post("/modules/{id}/plan", h.PlanModule)
	r.Get("/modules/{id}/docs", h.ModuleDocs)

	r.Post("/validate", h.ValidateTemplate)
	r.Get("/search", h.SearchModules)
	r.Get("/stats", h.Stats)

	if h.metricsEnabled {
		r.Method(http.MethodGet, h.metricsPath, promhttp.Handler())
	}

	return r
}

// Health responds to liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
