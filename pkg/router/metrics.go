package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects search counters. A nil *Metrics records nothing.
type Metrics struct {
	Searches *prometheus.CounterVec
	Expanded prometheus.Histogram
	Duration prometheus.Histogram
}

// NewMetrics registers the router collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ots",
			Subsystem: "router",
			Name:      "searches_total",
			Help:      "Route searches by outcome.",
		}, []string{"outcome"}),
		Expanded: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ots",
			Subsystem: "router",
			Name:      "expanded_cells",
			Help:      "Cells expanded per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ots",
			Subsystem: "router",
			Name:      "search_seconds",
			Help:      "Wall time per search.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
}

func (m *Metrics) observe(res searchResult) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(res.Outcome.String()).Inc()
	m.Expanded.Observe(float64(res.Expanded))
	m.Duration.Observe(res.Elapsed.Seconds())
}
