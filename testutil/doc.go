// Package testutil provides testing utilities for endfkit.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG with generators for the shapes
// of data the containers hold.
//
// # Random Data Generation
//
//	rng := testutil.NewRNG(seed)
//	energies := rng.SortedGrid(500, 1e-5, 2e7) // strictly ascending, log-spaced
//	xs := rng.Float32s(500, 0, 100)            // uniform [0, 100)
//	keys := rng.Keys(1000)                     // unique map keys
package testutil
