package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "klearn"

// Prometheus holds the collectors for the learner operations.
type Prometheus struct {
	Operations *prometheus.CounterVec
	Solve      *prometheus.HistogramVec
	Samples    *prometheus.GaugeVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations",
				Help:      "learner operations by outcome",
			}, []string{"learner", "op", "status"}),
		Solve: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solve_seconds",
				Help:      "duration of the learner solve step",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			}, []string{"learner"}),
		Samples: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "training_samples",
				Help:      "training samples held by the last solved learner",
			}, []string{"learner"}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Operations, p.Solve, p.Samples}
}
