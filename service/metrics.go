package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records calculator activity. A nil *Metrics records nothing.
type Metrics struct {
	projections *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	cacheHits   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studentloan_projections_total",
			Help: "Loan projections run, by calculator.",
		}, []string{"calculator"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studentloan_projection_duration_seconds",
			Help:    "Time spent running projections for one request, by calculator.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"calculator"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "studentloan_cache_hits_total",
			Help: "Repayment estimates served from cache.",
		}),
	}
	reg.MustRegister(m.projections, m.duration, m.cacheHits)
	return m
}

func (m *Metrics) observe(calculator string, runs int, started time.Time) {
	if m == nil {
		return
	}
	m.projections.WithLabelValues(calculator).Add(float64(runs))
	m.duration.WithLabelValues(calculator).Observe(time.Since(started).Seconds())
}

func (m *Metrics) cacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}
