package handlers

import (
	"net/http"

	"yatube/internal/logging"
	"yatube/internal/repository"
)

type HealthResponse struct {
	Status   string            `json:"status"`
	Database string            `json:"database"`
	Counts   *repository.Stats `json:"counts,omitempty"`
}

// HealthHandler pings the database and reports table row counts.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("БД недоступна")
		writeJSON(w, HealthResponse{Status: "unavailable", Database: "down"}, http.StatusServiceUnavailable)
		return
	}

	stats, err := h.StatsService.Counts(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("не удалось посчитать записи")
		writeJSON(w, HealthResponse{Status: "degraded", Database: "up"}, http.StatusOK)
		return
	}

	writeJSON(w, HealthResponse{Status: "ok", Database: "up", Counts: &stats}, http.StatusOK)
}
