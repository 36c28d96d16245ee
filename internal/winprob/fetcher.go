// Package winprob implements the win-probability poller: a schedule-gated
// cycle that samples the league scoreboard and appends one point per
// matchup to a persisted time series.
package winprob

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// ScoringFeed supplies the active week and the live scoreboard.
type ScoringFeed interface {
	CurrentWeek(ctx context.Context) (int, error)
	Scoreboard(ctx context.Context, week int) (*models.Scoreboard, error)
}

// Fetcher retrieves and normalizes the current state of every matchup.
// It performs no writes; a feed failure aborts the whole fetch with no
// partial results.
type Fetcher struct {
	feed ScoringFeed
}

// NewFetcher creates a snapshot fetcher over the scoring feed.
func NewFetcher(feed ScoringFeed) *Fetcher {
	return &Fetcher{feed: feed}
}

// FetchResult is one cycle's worth of normalized matchup snapshots.
type FetchResult struct {
	Season    string
	Week      int
	Snapshots []models.Snapshot
}

// Fetch resolves the active season/week and snapshots every matchup.
// Returns a result with no snapshots when the week is idle: "nothing to
// record" is a valid state, not an error.
func (f *Fetcher) Fetch(ctx context.Context, now time.Time) (*FetchResult, error) {
	season := strconv.Itoa(now.Year())

	week, err := f.feed.CurrentWeek(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving current week: %w", err)
	}
	if week == 0 {
		// No active week is a valid idle condition, not an error.
		log.Printf("[winprob] no active week for season %s, skipping", season)
		return &FetchResult{Season: season}, nil
	}

	sb, err := f.feed.Scoreboard(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}

	result := &FetchResult{Season: season, Week: week}

	// Samples are only meaningful while the week is being played.
	if sb.Status != models.WeekMidEvent {
		log.Printf("[winprob] week %d status %q, nothing to record", week, sb.Status)
		return result, nil
	}

	for _, m := range sb.Matchups {
		result.Snapshots = append(result.Snapshots, models.Snapshot{
			MatchupID: m.MatchupID,
			Team1:     m.Team1,
			Team2:     m.Team2,
			Final:     m.Status == models.WeekPostEvent,
		})
	}
	return result, nil
}
