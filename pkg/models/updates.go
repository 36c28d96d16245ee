package models

import "time"

// WinProbUpdate is the message published to the winprob stream and fanned
// out to WebSocket subscribers after each successful append.
type WinProbUpdate struct {
	Season     string    `json:"season"`
	Week       int       `json:"week"`
	MatchupID  string    `json:"matchup_id"`
	Team1      string    `json:"team1"`
	Team2      string    `json:"team2"`
	Team1Pct   float64   `json:"team1_pct"`
	Team2Pct   float64   `json:"team2_pct"`
	Final      bool      `json:"final"`
	CapturedAt time.Time `json:"captured_at"`
}
