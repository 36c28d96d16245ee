// Package handlers implements the sideline HTTP API.
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// FantasyFeed is the part of the fantasy API the handlers consume.
type FantasyFeed interface {
	CurrentWeek(ctx context.Context) (int, error)
	Scoreboard(ctx context.Context, week int) (*models.Scoreboard, error)
	Standings(ctx context.Context) ([]models.TeamStanding, error)
	Roster(ctx context.Context, teamKey string, week int) (*models.Roster, error)
	DraftResults(ctx context.Context) ([]models.DraftPick, error)
	Players(ctx context.Context, playerKeys []string) ([]models.Player, error)
}

// ScheduleFeed supplies the day's NFL games for the Ice report.
type ScheduleFeed interface {
	EventsForDate(ctx context.Context, date time.Time) ([]models.ScheduleEvent, error)
}

// HealthCheck reports service liveness.
func HealthCheck(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"service":   service,
		})
	}
}

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[api] encoding response: %v", err)
	}
}

// respondError writes a JSON error response, logging the underlying cause.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("[api] %s: %v", message, err)
	}
	respondJSON(w, status, map[string]string{"error": message})
}

// parseIntParam reads an integer query parameter with a default.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// currentSeason is the active season: the current calendar year.
func currentSeason() string {
	return strconv.Itoa(time.Now().Year())
}
