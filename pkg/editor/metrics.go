package editor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks editor activity. A nil *Metrics records nothing.
type Metrics struct {
	Reroutes   *prometheus.CounterVec
	Kept       prometheus.Counter
	Dropped    prometheus.Counter
	Components prometheus.Gauge
	Wires      prometheus.Gauge
}

// NewMetrics registers the editor collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Reroutes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ots",
			Subsystem: "editor",
			Name:      "reroutes_total",
			Help:      "Wires routed, by triggering edit.",
		}, []string{"trigger"}),
		Kept: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ots",
			Subsystem: "editor",
			Name:      "routes_kept_total",
			Help:      "Cached routes reused by a recompute.",
		}),
		Dropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "ots",
			Subsystem: "editor",
			Name:      "wires_dropped_total",
			Help:      "Wires removed because a component was deleted.",
		}),
		Components: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "ots",
			Subsystem: "editor",
			Name:      "components",
			Help:      "Placed components.",
		}),
		Wires: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "ots",
			Subsystem: "editor",
			Name:      "wires",
			Help:      "Wires in the drawing.",
		}),
	}
}

func (m *Metrics) rerouted(trigger string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Reroutes.WithLabelValues(trigger).Add(float64(n))
}

func (m *Metrics) keptRoutes(n int) {
	if m == nil || n == 0 {
		return
	}
	m.Kept.Add(float64(n))
}

func (m *Metrics) dropped(n int) {
	if m == nil || n == 0 {
		return
	}
	m.Dropped.Add(float64(n))
}

func (m *Metrics) setCounts(components, wires int) {
	if m == nil {
		return
	}
	m.Components.Set(float64(components))
	m.Wires.Set(float64(wires))
}
