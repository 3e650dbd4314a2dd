package endfkit

import (
	"errors"
	"sync/atomic"
)

// Kind identifies a container family in logs and metrics.
type Kind uint8

const (
	// KindTable is the cross-section/energy sample table.
	KindTable Kind = iota + 1
	// KindVector is the float vector.
	KindVector
	// KindBuffer is the text buffer.
	KindBuffer
	// KindMap is the string-keyed float map.
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindVector:
		return "vector"
	case KindBuffer:
		return "buffer"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// MetricsCollector defines an interface for collecting container metrics.
// Package prommetrics provides a Prometheus-backed implementation.
type MetricsCollector interface {
	// RecordGrowth is called after each capacity change attempt.
	// from and to are element (or bucket) counts, err is nil if successful.
	RecordGrowth(kind Kind, from, to int, err error)

	// RecordFailure is called whenever an operation fails its preconditions.
	RecordFailure(kind Kind, op string, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGrowth(Kind, int, int, error) {}
func (NoopMetricsCollector) RecordFailure(Kind, string, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GrowCount      atomic.Int64
	GrowErrors     atomic.Int64
	GrowElements   atomic.Int64
	FailureCount   atomic.Int64
	NotFoundCount  atomic.Int64
	AllocFailCount atomic.Int64
}

// RecordGrowth implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrowth(_ Kind, from, to int, err error) {
	b.GrowCount.Add(1)
	if err != nil {
		b.GrowErrors.Add(1)
		return
	}
	b.GrowElements.Add(int64(to - from))
}

// RecordFailure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFailure(_ Kind, _ string, err error) {
	b.FailureCount.Add(1)
	switch {
	case errors.Is(err, ErrKeyNotFound):
		b.NotFoundCount.Add(1)
	case errors.Is(err, ErrAllocation):
		b.AllocFailCount.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GrowCount:      b.GrowCount.Load(),
		GrowErrors:     b.GrowErrors.Load(),
		GrowElements:   b.GrowElements.Load(),
		FailureCount:   b.FailureCount.Load(),
		NotFoundCount:  b.NotFoundCount.Load(),
		AllocFailCount: b.AllocFailCount.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GrowCount      int64
	GrowErrors     int64
	GrowElements   int64
	FailureCount   int64
	NotFoundCount  int64
	AllocFailCount int64
}
