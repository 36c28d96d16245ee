package winprob

import (
	"context"
	"log"
	"time"

	"github.com/mgaribay43/bok-choy-league-sub001/internal/metrics"
)

// ScheduleGate answers whether any tracked game is plausibly live.
type ScheduleGate interface {
	ShouldPoll(ctx context.Context, now time.Time) bool
}

// Poller runs the periodic gate -> fetch -> append cycle. Every error path
// degrades to "do nothing this cycle"; the next tick is the retry.
type Poller struct {
	gate         ScheduleGate
	fetcher      *Fetcher
	appender     *Appender
	interval     time.Duration
	cycleTimeout time.Duration
}

// NewPoller creates the polling loop.
func NewPoller(g ScheduleGate, f *Fetcher, a *Appender, interval, cycleTimeout time.Duration) *Poller {
	return &Poller{
		gate:         g,
		fetcher:      f,
		appender:     a,
		interval:     interval,
		cycleTimeout: cycleTimeout,
	}
}

// Run starts the polling loop and blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	log.Printf("[winprob] starting poller, interval=%s", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Do initial cycle
	p.RunCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[winprob] stopping poller")
			return
		case <-ticker.C:
			p.RunCycle(ctx)
		}
	}
}

// RunCycle performs one gate -> fetch -> append pass.
func (p *Poller) RunCycle(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.cycleTimeout)
	defer cancel()

	now := time.Now()

	if !p.gate.ShouldPoll(ctx, now) {
		metrics.PollCycles.WithLabelValues("gated").Inc()
		return
	}

	result, err := p.fetcher.Fetch(ctx, now)
	if err != nil {
		log.Printf("[winprob] fetch failed, skipping cycle: %v", err)
		metrics.PollCycles.WithLabelValues("feed_error").Inc()
		return
	}
	if result.Week == 0 {
		metrics.PollCycles.WithLabelValues("no_week").Inc()
		return
	}
	if len(result.Snapshots) == 0 {
		metrics.PollCycles.WithLabelValues("week_idle").Inc()
		return
	}

	appended := p.appender.AppendAll(ctx, result, now)
	log.Printf("[winprob] cycle complete: week=%d matchups=%d appended=%d",
		result.Week, len(result.Snapshots), appended)
	metrics.PollCycles.WithLabelValues("ok").Inc()
}
