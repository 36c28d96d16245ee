package models

import "time"

// ScheduleEvent is one real-world NFL game from the schedule/status feed.
// Fetched fresh on every gate evaluation, never persisted.
type ScheduleEvent struct {
	EventID    string    `json:"event_id"`
	Name       string    `json:"name"`
	ShortName  string    `json:"short_name"`
	LocalStart time.Time `json:"local_start"` // zero when the feed's date failed to parse
	StatusText string    `json:"status_text"` // free-text, e.g. "Q2 5:31", "Final"
	State      string    `json:"state"`       // "pre", "in", "post"
	Completed  bool      `json:"completed"`
	HomeAbbr   string    `json:"home_abbr"`
	AwayAbbr   string    `json:"away_abbr"`
}

// InProgress reports whether the event's state says the game is being played.
func (e ScheduleEvent) InProgress() bool {
	return e.State == "in"
}

// Involves reports whether the given NFL team abbreviation plays in this event.
func (e ScheduleEvent) Involves(abbr string) bool {
	return abbr != "" && (e.HomeAbbr == abbr || e.AwayAbbr == abbr)
}
