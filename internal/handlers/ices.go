package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/icetracker"
	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// IcesHandler builds the week's Ice report by cross-referencing every
// team's roster against the NFL schedule.
type IcesHandler struct {
	fantasy  FantasyFeed
	schedule ScheduleFeed
}

// NewIcesHandler creates the Ice report handler.
func NewIcesHandler(fantasy FantasyFeed, schedule ScheduleFeed) *IcesHandler {
	return &IcesHandler{fantasy: fantasy, schedule: schedule}
}

// GetIces returns the current Ice candidates across the whole league.
// GET /api/v1/ices?week={n}
func (h *IcesHandler) GetIces(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	week := parseIntParam(r, "week", 0)
	if week == 0 {
		current, err := h.fantasy.CurrentWeek(ctx)
		if err != nil {
			respondError(w, http.StatusBadGateway, "failed to resolve current week", err)
			return
		}
		week = current
	}

	events, err := h.schedule.EventsForDate(ctx, time.Now())
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to retrieve schedule", err)
		return
	}

	standings, err := h.fantasy.Standings(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to retrieve league teams", err)
		return
	}

	var ices []models.Ice
	for _, team := range standings {
		roster, err := h.fantasy.Roster(ctx, team.TeamKey, week)
		if err != nil {
			// One unreadable roster shouldn't sink the whole report.
			log.Printf("[api] skipping roster %s: %v", team.TeamKey, err)
			continue
		}
		ices = append(ices, icetracker.FindIces(roster, events)...)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"week":  week,
		"ices":  ices,
		"count": len(ices),
	})
}
