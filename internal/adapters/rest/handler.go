// Package rest is the HTTP adapter serving the card and health
// endpoints.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/novatorem/novatorem/internal/cache"
	"github.com/novatorem/novatorem/internal/core/services"
	"github.com/novatorem/novatorem/internal/render"
)

// Resolver yields the current listening state. Implemented by
// services.Resolver.
type Resolver interface {
	Resolve(ctx context.Context) (services.Resolution, error)
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	resolver Resolver
	pipeline *render.Pipeline
	cache    *cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
	router   *http.ServeMux // Standard library router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(resolver Resolver, pipeline *render.Pipeline, c *cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		resolver: resolver,
		pipeline: pipeline,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
		router:   http.NewServeMux(),
	}

	// Register Routes
	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface. Every request gets an
// id and an access log line around the routed handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	start := time.Now()

	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	h.router.ServeHTTP(sw, r)

	h.logger.Info("request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", sw.status),
		zap.Duration("duration", time.Since(start)))
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Card rendering
	h.router.HandleFunc("GET /{$}", h.Card)
	h.router.HandleFunc("GET /card", h.Card)
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "novatorem is live 🎶"})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
