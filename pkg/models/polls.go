package models

import "time"

// Poll is a league poll with a fixed option list
type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	Week      int       `json:"week"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	ClosesAt  time.Time `json:"closes_at,omitempty"`
}

// PollResult is the aggregated vote tally for one poll
type PollResult struct {
	PollID     string         `json:"poll_id"`
	Question   string         `json:"question"`
	Counts     map[string]int `json:"counts"` // option -> votes
	TotalVotes int            `json:"total_votes"`
}
