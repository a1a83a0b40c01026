package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"todo-backend/application/ports"
)

// HealthHandler serves the banner, liveness and readiness endpoints
type HealthHandler struct {
	version string
	checker ports.HealthChecker
	logger  *zap.Logger
}

// NewHealthHandler creates a health handler. A nil checker makes readiness
// always succeed.
func NewHealthHandler(version string, checker ports.HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		version: version,
		checker: checker,
		logger:  logger,
	}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Todo API - Clean Architecture",
		"version": h.version,
		"status":  "healthy",
	}, h.logger)
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready handles GET /ready by probing the backing store
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.checker != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := h.checker.Ping(ctx); err != nil {
			h.logger.Warn("Readiness check failed", zap.Error(err))
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
			}, h.logger)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}
