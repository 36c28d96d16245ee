package models

import (
	"fmt"
	"time"
)

// PointLabelLayout renders a point's display label from its captured
// timestamp, e.g. "Sunday 1:05:31 PM". Writers and readers share it so
// stored and re-derived labels never drift apart.
const PointLabelLayout = "Monday 3:04:05 PM"

// SeriesPoint is one timestamped win-probability sample.
// CapturedAt is the structured timestamp; Label is the display form
// rendered in the league's timezone at read time.
type SeriesPoint struct {
	CapturedAt time.Time `json:"t"`
	Label      string    `json:"time"`
	Team1Pct   float64   `json:"team1Pct"`
	Team2Pct   float64   `json:"team2Pct"`
}

// SeriesDocument is the persisted per-matchup win-probability time series.
// Keyed by "<season>_<week>_<matchupId>". Points are append-only under this
// component's writes; insertion order is chronological order.
type SeriesDocument struct {
	MatchupID string        `json:"matchupId"`
	Team1     TeamIdentity  `json:"team1"`
	Team2     TeamIdentity  `json:"team2"`
	Points    []SeriesPoint `json:"points"`
	Final     bool          `json:"final"`
	Season    string        `json:"season"`
	Week      int           `json:"week"`
}

// SeriesKey builds the composite document key for a matchup's series.
func SeriesKey(season string, week int, matchupID string) string {
	return fmt.Sprintf("%s_%d_%s", season, week, matchupID)
}
