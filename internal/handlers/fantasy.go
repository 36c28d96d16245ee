package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/cache"
	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// FantasyHandler proxies the fantasy feed with per-endpoint caching, so
// page loads don't burn through the upstream rate limit.
type FantasyHandler struct {
	feed  FantasyFeed
	cache *cache.RedisWriter
}

// NewFantasyHandler creates the proxy handler. cache may be nil, which
// disables caching (useful in tests).
func NewFantasyHandler(feed FantasyFeed, cacheWriter *cache.RedisWriter) *FantasyHandler {
	return &FantasyHandler{feed: feed, cache: cacheWriter}
}

// GetStandings returns the league standings.
// GET /api/v1/standings
func (h *FantasyHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	key := cache.StandingsKey(currentSeason())
	var standings []models.TeamStanding
	if h.cacheGet(ctx, key, &standings) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"standings": standings})
		return
	}

	standings, err := h.feed.Standings(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to retrieve standings", err)
		return
	}
	h.cacheSet(ctx, key, standings, cache.LiveTTL)

	respondJSON(w, http.StatusOK, map[string]interface{}{"standings": standings})
}

// GetScoreboard returns the matchup scoreboard for a week.
// GET /api/v1/scoreboard?week={n}
func (h *FantasyHandler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	week := parseIntParam(r, "week", 0)
	if week == 0 {
		current, err := h.feed.CurrentWeek(ctx)
		if err != nil {
			respondError(w, http.StatusBadGateway, "failed to resolve current week", err)
			return
		}
		week = current
	}

	key := cache.ScoreboardKey(currentSeason(), week)
	var sb models.Scoreboard
	if h.cacheGet(ctx, key, &sb) {
		respondJSON(w, http.StatusOK, sb)
		return
	}

	fresh, err := h.feed.Scoreboard(ctx, week)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to retrieve scoreboard", err)
		return
	}

	ttl := cache.SettledTTL
	if fresh.Status == models.WeekMidEvent {
		ttl = cache.LiveTTL
	}
	h.cacheSet(ctx, key, fresh, ttl)

	respondJSON(w, http.StatusOK, fresh)
}

// GetRoster returns one team's lineup for a week.
// GET /api/v1/teams/{teamKey}/roster?week={n}
func (h *FantasyHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	teamKey := chi.URLParam(r, "teamKey")
	if teamKey == "" {
		respondError(w, http.StatusBadRequest, "team_key is required", nil)
		return
	}

	week := parseIntParam(r, "week", 0)
	if week == 0 {
		current, err := h.feed.CurrentWeek(ctx)
		if err != nil {
			respondError(w, http.StatusBadGateway, "failed to resolve current week", err)
			return
		}
		week = current
	}

	key := cache.RosterKey(teamKey, week)
	var roster models.Roster
	if h.cacheGet(ctx, key, &roster) {
		respondJSON(w, http.StatusOK, roster)
		return
	}

	fresh, err := h.feed.Roster(ctx, teamKey, week)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to retrieve roster", err)
		return
	}
	h.cacheSet(ctx, key, fresh, cache.LiveTTL)

	respondJSON(w, http.StatusOK, fresh)
}

// GetDraft returns the league draft board.
// GET /api/v1/draft
func (h *FantasyHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	key := cache.DraftKey(currentSeason())
	var picks []models.DraftPick
	if h.cacheGet(ctx, key, &picks) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"picks": picks})
		return
	}

	picks, err := h.feed.DraftResults(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to retrieve draft results", err)
		return
	}
	h.cacheSet(ctx, key, picks, cache.DraftTTL)

	respondJSON(w, http.StatusOK, map[string]interface{}{"picks": picks})
}

// GetPlayers returns player records for a comma-separated key list.
// GET /api/v1/players?keys=nfl.p.1,nfl.p.2
func (h *FantasyHandler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	raw := r.URL.Query().Get("keys")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "keys is required", nil)
		return
	}
	playerKeys := strings.Split(raw, ",")

	key := cache.PlayersKey(playerKeys)
	var players []models.Player
	if h.cacheGet(ctx, key, &players) {
		respondJSON(w, http.StatusOK, map[string]interface{}{"players": players})
		return
	}

	players, err := h.feed.Players(ctx, playerKeys)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to retrieve players", err)
		return
	}
	h.cacheSet(ctx, key, players, cache.SettledTTL)

	respondJSON(w, http.StatusOK, map[string]interface{}{"players": players})
}

func (h *FantasyHandler) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if h.cache == nil {
		return false
	}
	hit, err := h.cache.Get(ctx, key, out)
	if err != nil {
		// Cache trouble shouldn't break the request; fall through to the feed.
		return false
	}
	return hit
}

func (h *FantasyHandler) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if h.cache == nil {
		return
	}
	_ = h.cache.Set(ctx, key, value, ttl)
}
