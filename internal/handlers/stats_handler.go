package handlers

import (
	"net/http"

	"lingualearn/internal/service"
)

// StatsHandler serves the dashboard statistics endpoints
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetUserStats returns the user's counters, streak and XP total
func (h *StatsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	stats, err := h.statsService.GetUserStats(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load stats", "user stats error", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetDifficultyStats returns the difficulty breakdown and the 7-day XP chart
func (h *StatsHandler) GetDifficultyStats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	stats, err := h.statsService.GetDifficultyStats(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load stats", "difficulty stats error", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
