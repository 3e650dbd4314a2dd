// Package endfkit provides the growable containers used to hold tabulated
// nuclear data before it is consumed by lookup and interpolation routines.
//
// The container family is monomorphic:
//
//   - xsec.Table: parallel cross-section/energy samples with sorted lookup
//     and linear interpolation
//   - vector.Vector: a float32 vector with front, back and positional
//     insertion and removal
//   - text.Buffer: an owned, growable byte string
//   - dict.Map: a string to float32 map using separate chaining
//
// # Quick Start
//
//	tbl, _ := xsec.New(5)
//	defer tbl.Close()
//	for i, xs := range []float32{10, 20, 30, 40, 50} {
//	    _ = tbl.Push(xs, float32(i+1))
//	}
//	v, _ := tbl.Interpolate(2.5) // 25
//
// # Growth
//
// All containers follow the same growth law: capacity doubles while it is
// below 1 MiB elements and grows by a fixed 1 MiB elements afterwards.
//
// # Errors
//
// Every operation validates its own preconditions and returns an explicit
// error. Errors wrap one of the sentinels in this package (ErrInvalidArgument,
// ErrIndexOutOfRange, ErrAllocation, ErrOutOfRange, ErrKeyNotFound,
// ErrKeyExists) and are matched with errors.Is. No operation panics on bad
// input.
//
// # Memory Budget
//
// Allocations can be charged against a resource.Controller via WithBudget.
// A reservation that would exceed the limit fails with ErrAllocation and the
// container keeps its previous, valid state.
//
// # Diagnostics
//
// Failed operations are logged through WithLogger and counted through
// WithMetricsCollector. Package prommetrics exports the counters to
// Prometheus:
//
//	c := prommetrics.New(prometheus.DefaultRegisterer)
//	m, _ := dict.New(endfkit.WithMetricsCollector(c))
//
// # Concurrency
//
// Containers are not safe for concurrent mutation. Callers that share a
// container between goroutines must serialize access themselves.
package endfkit
