package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the solver and HTTP layer.
type Metrics struct {
	solveTotal      *prometheus.CounterVec
	solveDuration   prometheus.Histogram
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		solveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pig",
			Name:      "solve_total",
			Help:      "Expected-score computations, labelled by whether the cache answered.",
		}, []string{"cached"}),
		solveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pig",
			Name:      "solve_duration_seconds",
			Help:      "Time spent building and exponentiating the transition matrix.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
		}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pig",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pig",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}

	for _, c := range []prometheus.Collector{m.solveTotal, m.solveDuration, m.requestTotal, m.requestDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveSolve records one expected-score lookup. Cache hits are counted but
// not timed.
func (m *Metrics) ObserveSolve(d time.Duration, cached bool) {
	m.solveTotal.WithLabelValues(strconv.FormatBool(cached)).Inc()
	if !cached {
		m.solveDuration.Observe(d.Seconds())
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	m.requestTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path).Observe(d.Seconds())
}
