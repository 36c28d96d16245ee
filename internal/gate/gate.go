// Package gate decides whether a win-probability poll cycle should run at
// all, by checking the NFL schedule feed for a game currently in progress.
// It is deliberately cheap: one schedule fetch, no scoring-feed traffic.
package gate

import (
	"context"
	"log"
	"regexp"
	"time"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/metrics"
	"github.com/mgaribay43/bok-choy-league-sub001/pkg/models"
)

// postStartWindow is how long past the latest kickoff the gate stays open.
// Games have no fixed length; four hours is a conservative cap, anchored to
// the latest start in the batch so one late game keeps the gate open.
const postStartWindow = 4 * time.Hour

// inQuarterPattern matches status text meaning "currently in quarter 1-4",
// e.g. "Q2 5:31", "Q4", "End of Q3".
var inQuarterPattern = regexp.MustCompile(`(?i)\bQ[1-4]\b`)

// ScheduleFeed supplies the day's NFL games with start times and status.
type ScheduleFeed interface {
	EventsForDate(ctx context.Context, date time.Time) ([]models.ScheduleEvent, error)
}

// Gate evaluates whether any tracked game is plausibly live right now.
type Gate struct {
	feed ScheduleFeed
}

// New creates a schedule gate over the given feed.
func New(feed ScheduleFeed) *Gate {
	return &Gate{feed: feed}
}

// ShouldPoll reports whether a poll cycle should run at the given time.
// Every failure mode answers false: the gate fails closed and never
// returns an error to its caller.
func (g *Gate) ShouldPoll(ctx context.Context, now time.Time) bool {
	events, err := g.feed.EventsForDate(ctx, now)
	if err != nil {
		log.Printf("[gate] schedule feed unavailable, staying closed: %v", err)
		metrics.GateEvaluations.WithLabelValues("feed_error").Inc()
		return false
	}

	if len(events) == 0 {
		metrics.GateEvaluations.WithLabelValues("no_events").Inc()
		return false
	}

	var earliest, latest time.Time
	for _, ev := range events {
		if ev.LocalStart.IsZero() {
			continue
		}
		if earliest.IsZero() || ev.LocalStart.Before(earliest) {
			earliest = ev.LocalStart
		}
		if latest.IsZero() || ev.LocalStart.After(latest) {
			latest = ev.LocalStart
		}
	}
	if earliest.IsZero() {
		log.Printf("[gate] no event start times parsed, staying closed")
		metrics.GateEvaluations.WithLabelValues("no_start_times").Inc()
		return false
	}

	if now.Before(earliest) || now.After(latest.Add(postStartWindow)) {
		metrics.GateEvaluations.WithLabelValues("outside_window").Inc()
		return false
	}

	for _, ev := range events {
		if inQuarterPattern.MatchString(ev.StatusText) {
			metrics.GateEvaluations.WithLabelValues("open").Inc()
			return true
		}
	}

	metrics.GateEvaluations.WithLabelValues("no_live_quarter").Inc()
	return false
}
