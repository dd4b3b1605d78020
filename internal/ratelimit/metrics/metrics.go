package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Rejections *prometheus.CounterVec
	Buckets    prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rutcheck_ratelimit_rejections_total",
			Help: "Requests rejected by the per-IP rate limiter",
		}, []string{"class"}),
		Buckets: factory.NewGauge(prometheus.GaugeOpts{
			Name: "rutcheck_ratelimit_buckets",
			Help: "Live rate limit buckets held in memory",
		}),
	}
}

func (m *Metrics) IncrementRejections(class string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(class).Inc()
}

func (m *Metrics) SetBuckets(n int) {
	if m == nil {
		return
	}
	m.Buckets.Set(float64(n))
}
