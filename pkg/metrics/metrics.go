// Package metrics records Harvest client requests and session transitions as
// Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
)

const namespace = "harvest_client"

// Recorder implements harvest.MetricsRecorder.
type Recorder struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	handshakesTotal  *prometheus.CounterVec
	sessionEvents    *prometheus.CounterVec
	sessionConnected prometheus.Gauge
}

// New creates a recorder with its own registry.
func New() *Recorder {
	recorder := &Recorder{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of requests sent to the Harvest service",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of requests sent to the Harvest service",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"method"},
		),
		handshakesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "handshakes_total",
				Help:      "Total number of link discovery handshakes",
			},
			[]string{"result"},
		),
		sessionEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "session_events_total",
				Help:      "Total number of session lifecycle transitions",
			},
			[]string{"type"},
		),
		sessionConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "session_connected",
				Help:      "Whether the session currently holds discovered links",
			},
		),
	}

	recorder.registry.MustRegister(
		recorder.requestsTotal,
		recorder.requestDuration,
		recorder.handshakesTotal,
		recorder.sessionEvents,
		recorder.sessionConnected,
	)

	return recorder
}

// ObserveRequest implements harvest.MetricsRecorder.
func (r *Recorder) ObserveRequest(method string, statusCode int, elapsed time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}

	r.requestsTotal.WithLabelValues(method, status).Inc()
	r.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveHandshake implements harvest.MetricsRecorder.
func (r *Recorder) ObserveHandshake(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}

	r.handshakesTotal.WithLabelValues(result).Inc()
}

// ObserveSessionEvent implements harvest.MetricsRecorder.
func (r *Recorder) ObserveSessionEvent(eventType harvest.SessionEventType) {
	r.sessionEvents.WithLabelValues(string(eventType)).Inc()

	if eventType == harvest.SessionOpened {
		r.sessionConnected.Set(1)
	} else {
		r.sessionConnected.Set(0)
	}
}

// Registry returns the registry the metrics are registered with.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns the Prometheus metrics handler.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
