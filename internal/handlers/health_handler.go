package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// HealthResponse reports service and database state.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthHandler answers liveness probes.
type HealthHandler struct {
	db HealthChecker
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health. It returns 503 when the database does not answer.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		utils.Error(w, http.StatusServiceUnavailable, "service_unavailable", "Service is not healthy", nil)
		return
	}

	utils.JSON(w, http.StatusOK, HealthResponse{Status: "healthy", Database: "connected"})
}
