package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "unifin"

// Metrics holds the gateway's Prometheus collectors on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	errors        *prometheus.CounterVec
	contractCalls *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
	denials       *prometheus.CounterVec
}

// NewMetrics registers every collector along with the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"path", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "HTTP error responses by error code.",
		}, []string{"path", "method", "code"}),
		contractCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_calls_total",
			Help:      "Contract writes by contract, method and outcome kind.",
		}, []string{"contract", "method", "kind"}),
		callDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "contract_call_duration_seconds",
			Help:      "Time from submission to receipt or failure.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"contract", "method"}),
		denials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_denials_total",
			Help:      "Route guard denials by view and reason.",
		}, []string{"view", "reason"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.errors, m.contractCalls, m.callDuration, m.denials,
	)
	return m
}

// RecordRequest counts a finished request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError counts an error response.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(path, method, code).Inc()
}

// ObserveContractCall records the outcome of one contract write.
func (m *Metrics) ObserveContractCall(contract, method, kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.contractCalls.WithLabelValues(contract, method, kind).Inc()
	m.callDuration.WithLabelValues(contract, method).Observe(d.Seconds())
}

// RecordDenial counts a route guard denial.
func (m *Metrics) RecordDenial(view, reason string) {
	if m == nil {
		return
	}
	m.denials.WithLabelValues(view, reason).Inc()
}

// TrackSessions exports the current value of count as the active session gauge.
func (m *Metrics) TrackSessions(count func() int) {
	if m == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Client sessions currently held by the registry.",
	}, func() float64 { return float64(count()) }))
}

// Registry exposes the underlying registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
