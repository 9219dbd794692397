// Package metrics exposes Prometheus counters and gauges for the request lifecycle.
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics counts lifecycle activity.
type RequestMetrics struct {
	transitions *prometheus.CounterVec
	noops       *prometheus.CounterVec
	allocations *prometheus.CounterVec
	intake      prometheus.Counter
	byStatus    *prometheus.GaugeVec
	overdue     prometheus.Gauge
}

var (
	requestMetricsOnce sync.Once
	requestMetrics     *RequestMetrics
)

// Requests returns the process-wide metrics registered on the default registerer.
func Requests() *RequestMetrics {
	requestMetricsOnce.Do(func() {
		requestMetrics = NewRequestMetrics(prometheus.DefaultRegisterer)
	})
	return requestMetrics
}

// NewRequestMetrics registers a fresh set of counters on registerer.
func NewRequestMetrics(registerer prometheus.Registerer) *RequestMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &RequestMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adli_request_transitions_total",
			Help: "Applied lifecycle operations by operation and resulting status.",
		}, []string{"operation", "from", "to"}),
		noops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adli_request_noops_total",
			Help: "Lifecycle operations absorbed as no-ops.",
		}, []string{"operation", "status"}),
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adli_request_public_ids_allocated_total",
			Help: "Public request numbers handed out per year.",
		}, []string{"year"}),
		intake: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adli_request_intake_total",
			Help: "Requests created through the public form.",
		}),
		byStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "adli_requests",
			Help: "Requests in the registry by status, refreshed periodically.",
		}, []string{"status"}),
		overdue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adli_requests_overdue",
			Help: "Open requests past their due date.",
		}),
	}
	registerer.MustRegister(m.transitions, m.noops, m.allocations, m.intake, m.byStatus, m.overdue)
	return m
}

func (m *RequestMetrics) ObserveTransition(operation, from, to string) {
	m.transitions.WithLabelValues(operation, from, to).Inc()
}

func (m *RequestMetrics) ObserveNoop(operation, status string) {
	m.noops.WithLabelValues(operation, status).Inc()
}

// ObserveAllocation is called once the transaction that took the number commits.
func (m *RequestMetrics) ObserveAllocation(year int) {
	m.allocations.WithLabelValues(strconv.Itoa(year)).Inc()
}

func (m *RequestMetrics) ObserveIntake() {
	m.intake.Inc()
}

func (m *RequestMetrics) SetStatusCount(status string, n int64) {
	m.byStatus.WithLabelValues(status).Set(float64(n))
}

func (m *RequestMetrics) SetOverdue(n int64) {
	m.overdue.Set(float64(n))
}
