package models

// WeekStatus represents the play state of a fantasy week
type WeekStatus string

const (
	WeekPreEvent  WeekStatus = "preevent"
	WeekMidEvent  WeekStatus = "midevent"
	WeekPostEvent WeekStatus = "postevent"
)

// TeamIdentity is the stable identity of a fantasy team within a matchup
type TeamIdentity struct {
	TeamKey string `json:"team_key,omitempty"`
	Name    string `json:"name"`
	Logo    string `json:"logo"`
}

// ParticipantState is one team's side of a matchup at a point in time
type ParticipantState struct {
	TeamIdentity
	WinProbabilityPct float64 `json:"win_probability_pct"` // 0-100
	Points            float64 `json:"points"`
	ProjectedPoints   float64 `json:"projected_points"`
}

// Matchup is one head-to-head pairing within a week
type Matchup struct {
	MatchupID  string           `json:"matchup_id"`
	Week       int              `json:"week"`
	Status     WeekStatus       `json:"status"`
	IsPlayoffs bool             `json:"is_playoffs"`
	Team1      ParticipantState `json:"team1"`
	Team2      ParticipantState `json:"team2"`
}

// Snapshot is one matchup's normalized state captured by a poll cycle
type Snapshot struct {
	MatchupID string
	Team1     ParticipantState
	Team2     ParticipantState
	Final     bool
}

// Scoreboard is the normalized week-level scoreboard for a season/week
type Scoreboard struct {
	Season   string     `json:"season"`
	Week     int        `json:"week"`
	Status   WeekStatus `json:"status"`
	Matchups []Matchup  `json:"matchups"`
}

// TeamStanding is one team's row in the league standings
type TeamStanding struct {
	TeamKey       string  `json:"team_key"`
	Name          string  `json:"name"`
	Logo          string  `json:"logo"`
	Rank          int     `json:"rank"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

// RosterPlayer is one player occupying a roster slot for a given week
type RosterPlayer struct {
	PlayerKey        string  `json:"player_key"`
	Name             string  `json:"name"`
	NFLTeamAbbr      string  `json:"nfl_team_abbr"`
	DisplayPosition  string  `json:"display_position"`
	SelectedPosition string  `json:"selected_position"` // QB, WR, BN, IR, ...
	Points           float64 `json:"points"`
}

// Roster is a team's lineup for one week
type Roster struct {
	TeamKey string         `json:"team_key"`
	Week    int            `json:"week"`
	Players []RosterPlayer `json:"players"`
}

// DraftPick is one selection from the league's draft results
type DraftPick struct {
	Pick      int    `json:"pick"`
	Round     int    `json:"round"`
	TeamKey   string `json:"team_key"`
	PlayerKey string `json:"player_key"`
}

// Player is a league player record from the players collection
type Player struct {
	PlayerKey       string `json:"player_key"`
	Name            string `json:"name"`
	NFLTeamAbbr     string `json:"nfl_team_abbr"`
	DisplayPosition string `json:"display_position"`
	Headshot        string `json:"headshot,omitempty"`
}
