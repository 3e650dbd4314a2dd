package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// Float32s returns n values uniformly distributed in [minVal, maxVal).
func (r *RNG) Float32s(n int, minVal, maxVal float32) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	out := make([]float32, n)
	for i := range out {
		out[i] = minVal + r.rand.Float32()*span
	}
	return out
}

// SortedGrid returns n strictly ascending energies in [lo, hi], spaced
// log-uniformly with jitter, the way evaluated cross-section grids are.
// lo must be positive.
func (r *RNG) SortedGrid(n int, lo, hi float32) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float32, n)
	if n == 0 {
		return out
	}

	logLo := math.Log(float64(lo))
	span := math.Log(float64(hi)) - logLo
	for i := range out {
		// Each point falls in its own slice [i/n, (i+1)/n) of the log range.
		u := (float64(i) + r.rand.Float64()) / float64(n)
		v := float32(math.Exp(logLo + u*span))
		if i > 0 && v <= out[i-1] {
			v = math.Nextafter32(out[i-1], float32(math.Inf(1)))
		}
		out[i] = min(max(v, lo), hi)
	}
	return out
}

// Keys returns n distinct keys built from random letters.
func (r *RNG) Keys(n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, n)
	buf := make([]byte, 8)
	for i := range out {
		for j := range buf {
			buf[j] = letters[r.rand.Intn(len(letters))]
		}
		out[i] = fmt.Sprintf("%s-%d", buf, i)
	}
	return out
}
