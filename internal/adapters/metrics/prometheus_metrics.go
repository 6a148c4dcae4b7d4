// Package metrics provides Prometheus-based reporting for the interning table.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sufield/identifiers/pkg/intern"
)

// InternMetrics implements intern.Observer using Prometheus collectors.
type InternMetrics struct {
	lookups  *prometheus.CounterVec
	distinct prometheus.Gauge

	// The table only grows; notifications may arrive out of order.
	mu           sync.Mutex
	lastDistinct int
}

var _ intern.Observer = (*InternMetrics)(nil)

// NewInternMetrics registers the interning collectors with reg.
func NewInternMetrics(reg prometheus.Registerer) (m *InternMetrics, err error) {
	// promauto panics on duplicate registration.
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("failed to register intern metrics: %v", r)
		}
	}()

	factory := promauto.With(reg)
	return &InternMetrics{
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "identifiers_intern_lookups_total",
			Help: "Total number of intern calls",
		}, []string{"result"}), // result: hit, miss
		distinct: factory.NewGauge(prometheus.GaugeOpts{
			Name: "identifiers_intern_distinct_strings",
			Help: "Number of distinct strings held by the interning table",
		}),
	}, nil
}

// Interned records an intern call.
func (m *InternMetrics) Interned(hit bool, distinct int) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.WithLabelValues(result).Inc()
	m.setDistinct(distinct)
}

// Sync sets the collectors from a table snapshot, covering calls made before
// the observer was attached.
func (m *InternMetrics) Sync(stats intern.Stats) {
	m.setDistinct(stats.Distinct)
}

// setDistinct never lowers the gauge.
func (m *InternMetrics) setDistinct(distinct int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if distinct <= m.lastDistinct {
		return
	}
	m.lastDistinct = distinct
	m.distinct.Set(float64(distinct))
}
