// Package metrics exposes Prometheus collectors for the sideline services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sideline"

var (
	// GateEvaluations counts schedule-gate outcomes by reason:
	// "open", "feed_error", "no_events", "no_start_times",
	// "outside_window", "no_live_quarter".
	GateEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gate",
		Name:      "evaluations_total",
		Help:      "Schedule gate evaluations by outcome",
	}, []string{"outcome"})

	// PollCycles counts completed poll cycles by result:
	// "gated", "no_week", "week_idle", "ok", "feed_error".
	PollCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "winprob",
		Name:      "poll_cycles_total",
		Help:      "Win-probability poll cycles by result",
	}, []string{"result"})

	// PointsAppended counts series points durably written.
	PointsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "winprob",
		Name:      "points_appended_total",
		Help:      "Series points appended across all matchups",
	})

	// AppendConflicts counts optimistic-append retries caused by a
	// concurrent writer touching the same series document.
	AppendConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "winprob",
		Name:      "append_conflicts_total",
		Help:      "Optimistic series-append transaction conflicts",
	})

	// AppendErrors counts per-matchup append failures.
	AppendErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "winprob",
		Name:      "append_errors_total",
		Help:      "Series append failures",
	})

	// CacheRequests counts proxy cache lookups by result ("hit", "miss").
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Proxy response cache lookups by result",
	}, []string{"result"})

	// WSConnections tracks currently connected WebSocket clients.
	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ws",
		Name:      "connections",
		Help:      "Currently connected WebSocket clients",
	})

	// WSMessagesSent counts messages fanned out to WebSocket clients.
	WSMessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ws",
		Name:      "messages_sent_total",
		Help:      "Messages sent to WebSocket clients",
	})
)
