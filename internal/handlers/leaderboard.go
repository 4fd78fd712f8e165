package handlers

import (
	"encoding/json"
	"net/http"

	"connect-four-engine/internal/database"
)

// LeaderboardHandler serves aggregate results over plain HTTP. When the
// results store is not configured it reports 503 instead of failing the
// whole server.
type LeaderboardHandler struct {
	store *database.Store
}

func NewLeaderboardHandler(store *database.Store) *LeaderboardHandler {
	return &LeaderboardHandler{
		store: store,
	}
}

func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "Results store is not configured", http.StatusServiceUnavailable)
		return
	}

	leaderboard, err := h.store.Leaderboard(50) // Top 50 players
	if err != nil {
		http.Error(w, "Failed to fetch leaderboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leaderboard)
}

func (h *LeaderboardHandler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "Results store is not configured", http.StatusServiceUnavailable)
		return
	}

	playerName := r.URL.Query().Get("name")
	if playerName == "" {
		http.Error(w, "Player name is required", http.StatusBadRequest)
		return
	}

	stats, err := h.store.PlayerStats(playerName)
	if err != nil {
		http.Error(w, "Failed to fetch player stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
