package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db     Pinger
	cache  Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler. Either pinger may be
// nil when the dependency is absent.
func NewHealthHandler(db, cache Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health handles GET /health. Degraded dependencies turn the reply into
// a 503 so load balancers stop routing here.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	resp := healthResponse{Status: "ok", Checks: map[string]string{}}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error("database health check failed", "error", err)
			resp.Checks["database"] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		} else {
			resp.Checks["database"] = "up"
		}
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			h.logger.Warn("cache health check failed", "error", err)
			resp.Checks["cache"] = "down"
		} else {
			resp.Checks["cache"] = "up"
		}
	}

	return c.JSON(status, resp)
}
