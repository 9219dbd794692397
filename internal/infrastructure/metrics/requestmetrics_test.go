package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewRequestMetrics(registry)

	m.ObserveTransition("register", "new", "registered")
	m.ObserveTransition("register", "new", "registered")
	m.ObserveNoop("add_step", "done")
	m.ObserveAllocation(2026)
	m.ObserveIntake()
	m.SetStatusCount("new", 4)
	m.SetOverdue(2)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.transitions.WithLabelValues("register", "new", "registered")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.noops.WithLabelValues("add_step", "done")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.allocations.WithLabelValues("2026")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.intake))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.byStatus.WithLabelValues("new")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.overdue))
}

func TestRequestMetrics_DuplicateRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewRequestMetrics(registry)
	assert.Panics(t, func() { NewRequestMetrics(registry) })
}
