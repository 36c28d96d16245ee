package icetracker

import (
	"testing"

	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

func liveGame(home, away string) models.ScheduleEvent {
	return models.ScheduleEvent{
		EventID:  home + "-" + away,
		State:    "in",
		HomeAbbr: home,
		AwayAbbr: away,
	}
}

func finalGame(home, away string) models.ScheduleEvent {
	return models.ScheduleEvent{
		EventID:   home + "-" + away,
		State:     "post",
		Completed: true,
		HomeAbbr:  home,
		AwayAbbr:  away,
	}
}

func preGame(home, away string) models.ScheduleEvent {
	return models.ScheduleEvent{
		EventID:  home + "-" + away,
		State:    "pre",
		HomeAbbr: home,
		AwayAbbr: away,
	}
}

func TestFindIces(t *testing.T) {
	events := []models.ScheduleEvent{
		liveGame("NYG", "DAL"),
		finalGame("DET", "GB"),
		preGame("KC", "LAC"),
		liveGame("JAX", "TEN"),
	}

	tests := []struct {
		name     string
		player   models.RosterPlayer
		wantIce  bool
		wantGame string
	}{
		{
			name:     "zero points in live game",
			player:   models.RosterPlayer{PlayerKey: "461.p.1", Name: "CeeDee Lamb", NFLTeamAbbr: "DAL", SelectedPosition: "WR"},
			wantIce:  true,
			wantGame: "in",
		},
		{
			name:     "zero points in completed game",
			player:   models.RosterPlayer{PlayerKey: "461.p.2", Name: "Jahmyr Gibbs", NFLTeamAbbr: "DET", SelectedPosition: "RB"},
			wantIce:  true,
			wantGame: "post",
		},
		{
			name:    "zero points but game not started",
			player:  models.RosterPlayer{PlayerKey: "461.p.3", Name: "Travis Kelce", NFLTeamAbbr: "KC", SelectedPosition: "TE"},
			wantIce: false,
		},
		{
			name:    "scored points",
			player:  models.RosterPlayer{PlayerKey: "461.p.4", Name: "Dak Prescott", NFLTeamAbbr: "DAL", SelectedPosition: "QB", Points: 18.4},
			wantIce: false,
		},
		{
			name:    "benched player never ices",
			player:  models.RosterPlayer{PlayerKey: "461.p.5", Name: "Malik Nabers", NFLTeamAbbr: "NYG", SelectedPosition: "BN"},
			wantIce: false,
		},
		{
			name:    "injured reserve never ices",
			player:  models.RosterPlayer{PlayerKey: "461.p.6", Name: "Sam LaPorta", NFLTeamAbbr: "DET", SelectedPosition: "IR"},
			wantIce: false,
		},
		{
			name:    "team defense never ices",
			player:  models.RosterPlayer{PlayerKey: "461.p.100022", Name: "Dallas", NFLTeamAbbr: "DAL", SelectedPosition: "DEF"},
			wantIce: false,
		},
		{
			name:    "defense under its alternate slot name never ices",
			player:  models.RosterPlayer{PlayerKey: "461.p.100019", Name: "New York", NFLTeamAbbr: "NYG", SelectedPosition: "D/ST"},
			wantIce: false,
		},
		{
			name:    "bye week",
			player:  models.RosterPlayer{PlayerKey: "461.p.7", Name: "Josh Allen", NFLTeamAbbr: "BUF", SelectedPosition: "QB"},
			wantIce: false,
		},
		{
			name:     "fantasy-feed alias JAC matches schedule JAX",
			player:   models.RosterPlayer{PlayerKey: "461.p.8", Name: "Brian Thomas Jr.", NFLTeamAbbr: "JAC", SelectedPosition: "WR"},
			wantIce:  true,
			wantGame: "in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := &models.Roster{
				TeamKey: "461.l.12345.t.3",
				Week:    4,
				Players: []models.RosterPlayer{tt.player},
			}

			ices := FindIces(roster, events)
			if tt.wantIce != (len(ices) == 1) {
				t.Fatalf("got %d ices, wantIce=%v", len(ices), tt.wantIce)
			}
			if !tt.wantIce {
				return
			}

			ice := ices[0]
			if ice.PlayerKey != tt.player.PlayerKey {
				t.Errorf("PlayerKey = %q, want %q", ice.PlayerKey, tt.player.PlayerKey)
			}
			if ice.GameState != tt.wantGame {
				t.Errorf("GameState = %q, want %q", ice.GameState, tt.wantGame)
			}
			if ice.TeamKey != roster.TeamKey || ice.Week != roster.Week {
				t.Errorf("team/week = %s/%d, want %s/%d", ice.TeamKey, ice.Week, roster.TeamKey, roster.Week)
			}
		})
	}
}

func TestFindGame_ReverseAlias(t *testing.T) {
	// Schedule feed uses WAS; fantasy feed hands us WSH.
	events := []models.ScheduleEvent{liveGame("WAS", "PHI")}

	if _, ok := findGame("WSH", events); !ok {
		t.Error("findGame(WSH) failed to match schedule abbreviation WAS")
	}
}
