package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/store"
	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// SeriesHandler serves win-probability time series reads.
type SeriesHandler struct {
	store store.SeriesStore
	loc   *time.Location
}

// NewSeriesHandler creates the series read handler.
func NewSeriesHandler(seriesStore store.SeriesStore, loc *time.Location) *SeriesHandler {
	return &SeriesHandler{store: seriesStore, loc: loc}
}

// GetWeek returns every matchup series recorded for a season/week.
// GET /api/v1/winprob/{season}/{week}
func (h *SeriesHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	season := chi.URLParam(r, "season")
	week := parsePathInt(r, "week")
	if season == "" || week <= 0 {
		respondError(w, http.StatusBadRequest, "season and week are required", nil)
		return
	}

	docs, err := h.store.List(ctx, season, week)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve series", err)
		return
	}
	for _, doc := range docs {
		h.relabel(doc)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":   season,
		"week":     week,
		"matchups": docs,
		"count":    len(docs),
	})
}

// GetMatchup returns one matchup's series.
// GET /api/v1/winprob/{season}/{week}/{matchupID}
func (h *SeriesHandler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	season := chi.URLParam(r, "season")
	week := parsePathInt(r, "week")
	matchupID := chi.URLParam(r, "matchupID")
	if season == "" || week <= 0 || matchupID == "" {
		respondError(w, http.StatusBadRequest, "season, week and matchup_id are required", nil)
		return
	}

	doc, err := h.store.Get(ctx, season, week, matchupID)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "series not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve series", err)
		return
	}
	h.relabel(doc)

	respondJSON(w, http.StatusOK, doc)
}

// relabel re-derives display labels from the structured timestamps so the
// rendered label always reflects the configured timezone, whatever was
// stored at append time.
func (h *SeriesHandler) relabel(doc *models.SeriesDocument) {
	for i, p := range doc.Points {
		if !p.CapturedAt.IsZero() {
			doc.Points[i].Label = p.CapturedAt.In(h.loc).Format(models.PointLabelLayout)
		}
	}
}

func parsePathInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0
	}
	return v
}
