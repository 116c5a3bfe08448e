package query

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	lookups *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "sportify", Subsystem: "cache", Name: "lookups_total", Help: "Query cache lookups by resource and result."},
			[]string{"resource", "result"},
		),
	}
	reg.MustRegister(m.lookups)
	return m
}

func (m *Metrics) observe(resource string, result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(resource, result).Inc()
}
