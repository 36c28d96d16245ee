package yahoo

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// The Yahoo Fantasy JSON rendering is positionally indexed and weakly typed:
// resources arrive as arrays of single-key fragment objects, collections as
// {"0": {...}, "1": {...}, "count": N} maps, and numbers as either JSON
// numbers or strings. Everything in this file exists to keep that shape out
// of the rest of the codebase.

// flexFloat decodes a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexInt decodes a JSON number or a numeric string.
type flexInt int

func (i *flexInt) UnmarshalJSON(data []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = flexInt(f)
	return nil
}

// flexBool decodes a JSON bool, a 0/1 number, or a "0"/"1" string.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("true")) {
		*b = true
		return nil
	}
	if bytes.Equal(data, []byte("false")) || bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}
	var i flexInt
	if err := i.UnmarshalJSON(data); err != nil {
		*b = false
		return nil
	}
	*b = i != 0
	return nil
}

// objectMap is a partially decoded JSON object.
type objectMap map[string]json.RawMessage

// rawResponse is the top-level envelope of every Yahoo Fantasy response.
type rawResponse struct {
	FantasyContent struct {
		League json.RawMessage `json:"league"`
		Team   json.RawMessage `json:"team"`
	} `json:"fantasy_content"`
}

// rawLeagueMeta is the first element of the league array.
type rawLeagueMeta struct {
	LeagueKey   string  `json:"league_key"`
	LeagueID    string  `json:"league_id"`
	Name        string  `json:"name"`
	Season      string  `json:"season"`
	CurrentWeek flexInt `json:"current_week"`
	StartWeek   flexInt `json:"start_week"`
	EndWeek     flexInt `json:"end_week"`
}

// rawMatchupMeta is the scalar portion of a matchup object.
type rawMatchupMeta struct {
	Week          flexInt  `json:"week"`
	Status        string   `json:"status"`
	IsPlayoffs    flexBool `json:"is_playoffs"`
	IsConsolation flexBool `json:"is_consolation"`
}

// rawTeamLive is the second element of a team array: the live numbers.
type rawTeamLive struct {
	TeamPoints struct {
		Total flexFloat `json:"total"`
	} `json:"team_points"`
	TeamProjectedPoints struct {
		Total flexFloat `json:"total"`
	} `json:"team_projected_points"`
	WinProbability *flexFloat `json:"win_probability"` // 0-1; nil when the feed omits it
}

// rawTeamStandings is the team_standings fragment on the standings feed.
type rawTeamStandings struct {
	Rank          flexInt `json:"rank"`
	OutcomeTotals struct {
		Wins   flexInt `json:"wins"`
		Losses flexInt `json:"losses"`
		Ties   flexInt `json:"ties"`
	} `json:"outcome_totals"`
	PointsFor     flexFloat `json:"points_for"`
	PointsAgainst flexFloat `json:"points_against"`
}

// rawDraftResult is one draft_result object.
type rawDraftResult struct {
	Pick      flexInt `json:"pick"`
	Round     flexInt `json:"round"`
	TeamKey   string  `json:"team_key"`
	PlayerKey string  `json:"player_key"`
}

// rawPlayerPoints is the player_points fragment on roster/player feeds.
type rawPlayerPoints struct {
	Total flexFloat `json:"total"`
}

// rawName is a player's name fragment.
type rawName struct {
	Full string `json:"full"`
}

// rawHeadshot is a player's headshot fragment.
type rawHeadshot struct {
	URL string `json:"url"`
}

// rawTeamLogo wraps one logo entry in a team_logos list.
type rawTeamLogo struct {
	TeamLogo struct {
		Size string `json:"size"`
		URL  string `json:"url"`
	} `json:"team_logo"`
}
