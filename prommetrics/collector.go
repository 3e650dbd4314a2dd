// Package prommetrics exports container metrics to Prometheus.
package prommetrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/endfkit"
)

// Collector implements endfkit.MetricsCollector on top of Prometheus counters.
//
// A single Collector may be shared by containers used from different goroutines.
type Collector struct {
	growths    *prometheus.CounterVec
	grownSlots *prometheus.CounterVec
	failures   *prometheus.CounterVec
}

var _ endfkit.MetricsCollector = (*Collector)(nil)

// New registers the container metrics with reg. A nil reg leaves the metrics
// unregistered.
func New(reg prometheus.Registerer) *Collector {
	return &Collector{
		growths: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "endfkit_container_growths_total",
			Help: "Capacity growth attempts per container kind and outcome.",
		}, []string{"container", "result"}),
		grownSlots: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "endfkit_container_grown_slots_total",
			Help: "Elements or buckets added by successful growth.",
		}, []string{"container"}),
		failures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "endfkit_container_failures_total",
			Help: "Failed container operations per kind, operation and reason.",
		}, []string{"container", "op", "reason"}),
	}
}

// RecordGrowth implements endfkit.MetricsCollector.
func (c *Collector) RecordGrowth(kind endfkit.Kind, from, to int, err error) {
	if err != nil {
		c.growths.WithLabelValues(kind.String(), "error").Inc()
		return
	}
	c.growths.WithLabelValues(kind.String(), "ok").Inc()
	c.grownSlots.WithLabelValues(kind.String()).Add(float64(to - from))
}

// RecordFailure implements endfkit.MetricsCollector.
func (c *Collector) RecordFailure(kind endfkit.Kind, op string, err error) {
	c.failures.WithLabelValues(kind.String(), op, Reason(err)).Inc()
}

// Reason maps err to a low-cardinality label value.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, endfkit.ErrKeyNotFound):
		return "key_not_found"
	case errors.Is(err, endfkit.ErrKeyExists):
		return "key_exists"
	case errors.Is(err, endfkit.ErrAllocation):
		return "allocation"
	case errors.Is(err, endfkit.ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, endfkit.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, endfkit.ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "other"
	}
}
