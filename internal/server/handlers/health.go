package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/pkg/api"
)

// Pinger checks availability of a backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	pinger  Pinger
	logger  *zap.Logger
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(pinger Pinger, version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		pinger:  pinger,
		version: version,
		logger:  logger,
	}
}

// Health обрабатывает GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Status:  "ok",
		Version: h.version,
	}
	status := http.StatusOK

	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			h.logger.Warn("database is unavailable", zap.Error(err))
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, h.logger, status, resp)
}
