package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	OK    = "ok"
	Error = "error"
)

var Observer = &Metrics{
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.collectors()...)
}

// Metrics records the learner operations.
type Metrics struct {
	prometheus Prometheus
}

// Track counts an operation of the given learner, labelled by its outcome.
func (m *Metrics) Track(learner, op string, err error) {
	status := OK
	if err != nil {
		status = Error
	}
	m.prometheus.Operations.WithLabelValues(learner, op, status).Inc()
}

// Solved records a successful solve.
func (m *Metrics) Solved(learner string, samples int, duration time.Duration) {
	m.prometheus.Solve.WithLabelValues(learner).Observe(duration.Seconds())
	m.prometheus.Samples.WithLabelValues(learner).Set(float64(samples))
}

// Handler returns the http handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes the metrics on the given address in the background.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
}
