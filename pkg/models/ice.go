package models

// Ice flags a started player who scored zero while their game was live or
// done. A league penalty: the player's manager owes the league a drink.
type Ice struct {
	PlayerKey        string  `json:"player_key"`
	PlayerName       string  `json:"player_name"`
	NFLTeamAbbr      string  `json:"nfl_team_abbr"`
	SelectedPosition string  `json:"selected_position"`
	TeamKey          string  `json:"team_key"` // fantasy team that started the player
	Week             int     `json:"week"`
	Points           float64 `json:"points"`
	GameState        string  `json:"game_state"` // "in" or "post"
}
