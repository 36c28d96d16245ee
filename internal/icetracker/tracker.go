// Package icetracker finds "Ices": started players who put up zero points
// while their NFL game was in progress or already over. League rules make
// the offending manager buy a round.
package icetracker

import "github.com/mgaribay43/bok-choy-league-sub001/pkg/models"

// abbrAliases reconciles team abbreviations that differ between the
// fantasy feed and the schedule feed.
var abbrAliases = map[string]string{
	"JAC": "JAX",
	"WAS": "WSH",
	"LA":  "LAR",
}

// exemptSlots are roster slots that never ice: bench, injured reserve, and
// team defenses (a zero-point defense is a bad day, not an ice).
var exemptSlots = map[string]bool{
	"BN":   true,
	"IR":   true,
	"DEF":  true,
	"D/ST": true,
}

// FindIces cross-references one fantasy roster against the day's NFL games
// and flags started players with zero points whose game is live or final.
// A player whose game hasn't kicked off yet can still score, so pre-game
// players are never flagged.
func FindIces(roster *models.Roster, events []models.ScheduleEvent) []models.Ice {
	var ices []models.Ice

	for _, player := range roster.Players {
		if exemptSlots[player.SelectedPosition] {
			continue
		}
		if player.Points != 0 {
			continue
		}

		ev, ok := findGame(player.NFLTeamAbbr, events)
		if !ok {
			// Bye week or abbreviation we couldn't match; not an ice.
			continue
		}
		if !ev.InProgress() && !ev.Completed {
			continue
		}

		state := "in"
		if ev.Completed {
			state = "post"
		}
		ices = append(ices, models.Ice{
			PlayerKey:        player.PlayerKey,
			PlayerName:       player.Name,
			NFLTeamAbbr:      player.NFLTeamAbbr,
			SelectedPosition: player.SelectedPosition,
			TeamKey:          roster.TeamKey,
			Week:             roster.Week,
			Points:           player.Points,
			GameState:        state,
		})
	}
	return ices
}

// findGame locates the schedule event involving the given NFL team,
// trying the known abbreviation aliases in both directions.
func findGame(abbr string, events []models.ScheduleEvent) (models.ScheduleEvent, bool) {
	candidates := []string{abbr}
	if alias, ok := abbrAliases[abbr]; ok {
		candidates = append(candidates, alias)
	}
	for from, to := range abbrAliases {
		if to == abbr {
			candidates = append(candidates, from)
		}
	}

	for _, ev := range events {
		for _, c := range candidates {
			if ev.Involves(c) {
				return ev, true
			}
		}
	}
	return models.ScheduleEvent{}, false
}
