package yahoo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// One normalization function per feed. These are the only places that walk
// the positional shapes; everything they return is a pkg/models type.

// normalizeScoreboard turns the scoreboard section into a week scoreboard.
// The week-level status is taken from the first matchup, which is how the
// feed reports it; a week with no matchups normalizes to preevent.
func normalizeScoreboard(meta rawLeagueMeta, sections objectMap) (*models.Scoreboard, error) {
	section, ok := sections["scoreboard"]
	if !ok {
		return nil, fmt.Errorf("scoreboard section missing")
	}
	sb := decodeFragments(section)

	week := int(meta.CurrentWeek)
	if w, ok := sb["week"]; ok {
		var fw flexInt
		if err := fw.UnmarshalJSON(w); err == nil && int(fw) > 0 {
			week = int(fw)
		}
	}

	out := &models.Scoreboard{
		Season: meta.Season,
		Week:   week,
		Status: models.WeekPreEvent,
	}

	matchupsRaw, ok := sb["matchups"]
	if !ok {
		return out, nil
	}

	err := eachIndexed(matchupsRaw, func(idx int, elem json.RawMessage) {
		var wrapper struct {
			Matchup json.RawMessage `json:"matchup"`
		}
		if err := json.Unmarshal(elem, &wrapper); err != nil || len(wrapper.Matchup) == 0 {
			return
		}
		m, err := normalizeMatchup(strconv.Itoa(idx), wrapper.Matchup)
		if err != nil {
			return
		}
		if m.Week == 0 {
			m.Week = week
		}
		out.Matchups = append(out.Matchups, m)
	})
	if err != nil {
		return nil, fmt.Errorf("walking matchups: %w", err)
	}

	if len(out.Matchups) > 0 {
		out.Status = out.Matchups[0].Status
	}
	return out, nil
}

// normalizeMatchup decodes one matchup object: scalar meta plus the
// positional teams collection under "0".
func normalizeMatchup(id string, raw json.RawMessage) (models.Matchup, error) {
	var meta rawMatchupMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return models.Matchup{}, fmt.Errorf("decoding matchup meta: %w", err)
	}

	frags := decodeFragments(raw)
	teamsRaw, ok := frags["teams"]
	if !ok {
		return models.Matchup{}, fmt.Errorf("matchup %s has no teams", id)
	}

	m := models.Matchup{
		MatchupID:  id,
		Week:       int(meta.Week),
		Status:     normalizeWeekStatus(meta.Status),
		IsPlayoffs: bool(meta.IsPlayoffs),
	}

	var teams []models.ParticipantState
	err := eachIndexed(teamsRaw, func(_ int, elem json.RawMessage) {
		var wrapper struct {
			Team json.RawMessage `json:"team"`
		}
		if err := json.Unmarshal(elem, &wrapper); err != nil || len(wrapper.Team) == 0 {
			return
		}
		teams = append(teams, normalizeParticipant(wrapper.Team))
	})
	if err != nil {
		return models.Matchup{}, fmt.Errorf("walking teams: %w", err)
	}
	if len(teams) != 2 {
		return models.Matchup{}, fmt.Errorf("matchup %s has %d teams, want 2", id, len(teams))
	}
	m.Team1, m.Team2 = teams[0], teams[1]
	return m, nil
}

// normalizeParticipant decodes a team array: fragment metadata first, live
// numbers second. A missing win probability defaults to an even 50.
func normalizeParticipant(raw json.RawMessage) models.ParticipantState {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || len(elems) == 0 {
		return models.ParticipantState{WinProbabilityPct: 50}
	}

	p := models.ParticipantState{
		TeamIdentity:      normalizeTeamIdentity(decodeFragments(elems[0])),
		WinProbabilityPct: 50,
	}

	for _, elem := range elems[1:] {
		var live rawTeamLive
		if err := json.Unmarshal(elem, &live); err != nil {
			continue
		}
		p.Points = float64(live.TeamPoints.Total)
		p.ProjectedPoints = float64(live.TeamProjectedPoints.Total)
		if live.WinProbability != nil {
			p.WinProbabilityPct = float64(*live.WinProbability) * 100
		}
	}
	return p
}

func normalizeTeamIdentity(frags objectMap) models.TeamIdentity {
	id := models.TeamIdentity{
		TeamKey: stringField(frags, "team_key"),
		Name:    stringField(frags, "name"),
	}
	if logosRaw, ok := frags["team_logos"]; ok {
		var logos []rawTeamLogo
		if err := json.Unmarshal(logosRaw, &logos); err == nil && len(logos) > 0 {
			id.Logo = logos[0].TeamLogo.URL
		}
	}
	return id
}

// normalizeStandings turns the standings section into ranked team rows.
func normalizeStandings(sections objectMap) ([]models.TeamStanding, error) {
	section, ok := sections["standings"]
	if !ok {
		return nil, fmt.Errorf("standings section missing")
	}
	st := decodeFragments(firstArrayElement(section))
	teamsRaw, ok := st["teams"]
	if !ok {
		return nil, fmt.Errorf("standings has no teams")
	}

	var rows []models.TeamStanding
	err := eachIndexed(teamsRaw, func(_ int, elem json.RawMessage) {
		var wrapper struct {
			Team json.RawMessage `json:"team"`
		}
		if err := json.Unmarshal(elem, &wrapper); err != nil {
			return
		}
		var parts []json.RawMessage
		if err := json.Unmarshal(wrapper.Team, &parts); err != nil || len(parts) == 0 {
			return
		}

		identity := normalizeTeamIdentity(decodeFragments(parts[0]))
		row := models.TeamStanding{
			TeamKey: identity.TeamKey,
			Name:    identity.Name,
			Logo:    identity.Logo,
		}
		for _, part := range parts[1:] {
			var frag struct {
				TeamStandings *rawTeamStandings `json:"team_standings"`
			}
			if err := json.Unmarshal(part, &frag); err != nil || frag.TeamStandings == nil {
				continue
			}
			ts := frag.TeamStandings
			row.Rank = int(ts.Rank)
			row.Wins = int(ts.OutcomeTotals.Wins)
			row.Losses = int(ts.OutcomeTotals.Losses)
			row.Ties = int(ts.OutcomeTotals.Ties)
			row.PointsFor = float64(ts.PointsFor)
			row.PointsAgainst = float64(ts.PointsAgainst)
		}
		rows = append(rows, row)
	})
	if err != nil {
		return nil, fmt.Errorf("walking standings teams: %w", err)
	}
	return rows, nil
}

// normalizeRoster decodes the team roster feed into lineup slots.
func normalizeRoster(teamRaw json.RawMessage, week int) (*models.Roster, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(teamRaw, &elems); err != nil {
		return nil, fmt.Errorf("team is not an array: %w", err)
	}
	if len(elems) == 0 {
		return nil, fmt.Errorf("team array is empty")
	}

	roster := &models.Roster{
		TeamKey: stringField(decodeFragments(elems[0]), "team_key"),
		Week:    week,
	}

	var playersRaw json.RawMessage
	for _, elem := range elems[1:] {
		frags := decodeFragments(elem)
		if r, ok := frags["roster"]; ok {
			rosterFrags := decodeFragments(r)
			if p, ok := rosterFrags["players"]; ok {
				playersRaw = p
			}
		}
	}
	if playersRaw == nil {
		return roster, nil
	}

	err := eachIndexed(playersRaw, func(_ int, elem json.RawMessage) {
		var wrapper struct {
			Player json.RawMessage `json:"player"`
		}
		if err := json.Unmarshal(elem, &wrapper); err != nil || len(wrapper.Player) == 0 {
			return
		}
		roster.Players = append(roster.Players, normalizeRosterPlayer(wrapper.Player))
	})
	if err != nil {
		return nil, fmt.Errorf("walking roster players: %w", err)
	}
	return roster, nil
}

// normalizeRosterPlayer decodes one player array from a roster feed.
func normalizeRosterPlayer(raw json.RawMessage) models.RosterPlayer {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || len(elems) == 0 {
		return models.RosterPlayer{}
	}

	frags := decodeFragments(elems[0])
	p := models.RosterPlayer{
		PlayerKey:       stringField(frags, "player_key"),
		NFLTeamAbbr:     strings.ToUpper(stringField(frags, "editorial_team_abbr")),
		DisplayPosition: stringField(frags, "display_position"),
	}
	var name rawName
	if nameRaw, ok := frags["name"]; ok {
		if err := json.Unmarshal(nameRaw, &name); err == nil {
			p.Name = name.Full
		}
	}

	for _, elem := range elems[1:] {
		extras := decodeFragments(elem)
		if sel, ok := extras["selected_position"]; ok {
			p.SelectedPosition = stringField(decodeFragments(sel), "position")
		}
		if ptsRaw, ok := extras["player_points"]; ok {
			var pts rawPlayerPoints
			if err := json.Unmarshal(ptsRaw, &pts); err == nil {
				p.Points = float64(pts.Total)
			}
		}
	}
	return p
}

// normalizeDraftResults decodes the league draft results section.
func normalizeDraftResults(sections objectMap) ([]models.DraftPick, error) {
	section, ok := sections["draft_results"]
	if !ok {
		return nil, fmt.Errorf("draft_results section missing")
	}

	var picks []models.DraftPick
	err := eachIndexed(section, func(_ int, elem json.RawMessage) {
		var wrapper struct {
			DraftResult *rawDraftResult `json:"draft_result"`
		}
		if err := json.Unmarshal(elem, &wrapper); err != nil || wrapper.DraftResult == nil {
			return
		}
		dr := wrapper.DraftResult
		picks = append(picks, models.DraftPick{
			Pick:      int(dr.Pick),
			Round:     int(dr.Round),
			TeamKey:   dr.TeamKey,
			PlayerKey: dr.PlayerKey,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("walking draft results: %w", err)
	}
	return picks, nil
}

// normalizePlayers decodes the league players collection.
func normalizePlayers(sections objectMap) ([]models.Player, error) {
	section, ok := sections["players"]
	if !ok {
		return nil, fmt.Errorf("players section missing")
	}

	var players []models.Player
	err := eachIndexed(section, func(_ int, elem json.RawMessage) {
		var wrapper struct {
			Player json.RawMessage `json:"player"`
		}
		if err := json.Unmarshal(elem, &wrapper); err != nil || len(wrapper.Player) == 0 {
			return
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(wrapper.Player, &elems); err != nil || len(elems) == 0 {
			return
		}
		frags := decodeFragments(elems[0])
		p := models.Player{
			PlayerKey:       stringField(frags, "player_key"),
			NFLTeamAbbr:     strings.ToUpper(stringField(frags, "editorial_team_abbr")),
			DisplayPosition: stringField(frags, "display_position"),
		}
		var name rawName
		if nameRaw, ok := frags["name"]; ok {
			if err := json.Unmarshal(nameRaw, &name); err == nil {
				p.Name = name.Full
			}
		}
		var shot rawHeadshot
		if shotRaw, ok := frags["headshot"]; ok {
			if err := json.Unmarshal(shotRaw, &shot); err == nil {
				p.Headshot = shot.URL
			}
		}
		players = append(players, p)
	})
	if err != nil {
		return nil, fmt.Errorf("walking players: %w", err)
	}
	return players, nil
}

// normalizeWeekStatus maps the feed's matchup status strings onto WeekStatus.
func normalizeWeekStatus(s string) models.WeekStatus {
	switch strings.ToLower(s) {
	case "midevent":
		return models.WeekMidEvent
	case "postevent":
		return models.WeekPostEvent
	default:
		return models.WeekPreEvent
	}
}
