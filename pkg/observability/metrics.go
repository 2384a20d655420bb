package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aretw0/mosaic/pkg/domain"
)

// Metrics exposes engine activity as Prometheus collectors.
type Metrics struct {
	edits         prometheus.Counter
	historySize   prometheus.Gauge
	historyMoves  prometheus.Counter
	fetches       prometheus.Counter
	fetchErrors   prometheus.Counter
	fetchDuration prometheus.Histogram
}

// New registers the engine collectors with reg and returns the bundle.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		edits: factory.NewCounter(prometheus.CounterOpts{
			Name: "mosaic_edits_total",
			Help: "Committed tree mutations (deduplicated no-ops excluded).",
		}),
		historySize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mosaic_history_snapshots",
			Help: "Snapshots in the session history graph.",
		}),
		historyMoves: factory.NewCounter(prometheus.CounterOpts{
			Name: "mosaic_history_moves_total",
			Help: "Cursor moves via undo, redo or jump.",
		}),
		fetches: factory.NewCounter(prometheus.CounterOpts{
			Name: "mosaic_fetches_total",
			Help: "Upstream record fetches started (cache hits excluded).",
		}),
		fetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "mosaic_fetch_errors_total",
			Help: "Upstream record fetches that failed.",
		}),
		fetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mosaic_fetch_duration_seconds",
			Help:    "Duration of upstream record fetches.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Hooks returns lifecycle hooks that feed the collectors. Merge them with
// application hooks via domain.MergeHooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTreeChange: func(e *domain.TreeEvent) {
			m.edits.Inc()
			m.historySize.Set(float64(e.HistorySize))
		},
		OnHistoryMove: func(*domain.HistoryEvent) {
			m.historyMoves.Inc()
		},
		OnFetchStart: func(*domain.FetchEvent) {
			m.fetches.Inc()
		},
		OnFetchDone: func(e *domain.FetchEvent) {
			m.fetchDuration.Observe(e.Duration.Seconds())
		},
		OnFetchError: func(e *domain.FetchEvent) {
			m.fetchErrors.Inc()
			m.fetchDuration.Observe(e.Duration.Seconds())
		},
	}
}
