package xsec

import (
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/endfkit"
	"github.com/hupe1980/endfkit/internal/growth"
)

// Invalid is the value returned alongside a non-nil error.
const Invalid float32 = -1

// elemSize is the size of one float32 in bytes.
const elemSize = 4

// Sample is one (cross section, energy) pair.
type Sample struct {
	XS     float32
	Energy float32
}

// Table is a growable table of cross sections keyed by energy.
type Table struct {
	xs     []float32 // len(xs) is the capacity
	energy []float32 // len(energy) == len(xs)
	n      int

	opts     endfkit.Options
	reserved int64
	closed   bool
}

var _ endfkit.Container = (*Table)(nil)

// New creates an empty table with room for capacity samples.
// capacity may be 0.
func New(capacity int, optFns ...endfkit.Option) (*Table, error) {
	opts := endfkit.ApplyOptions(optFns)
	if capacity < 0 {
		return nil, opts.Fail(endfkit.KindTable, "new",
			fmt.Errorf("%w: negative capacity %d", endfkit.ErrInvalidArgument, capacity))
	}

	t := &Table{opts: opts}

	xs, err := t.alloc(capacity)
	if err != nil {
		return nil, opts.Fail(endfkit.KindTable, "new", err, "capacity", capacity)
	}
	energy, err := t.alloc(capacity)
	if err != nil {
		t.free(len(xs))
		return nil, opts.Fail(endfkit.KindTable, "new", err, "capacity", capacity)
	}

	t.xs = xs
	t.energy = energy
	return t, nil
}

// alloc reserves and allocates one array of n samples.
func (t *Table) alloc(n int) ([]float32, error) {
	size, err := growth.Bytes(n, elemSize)
	if err != nil {
		return nil, endfkit.NewAllocationError(0, err)
	}
	if err := t.opts.Reserve(size); err != nil {
		return nil, err
	}
	t.reserved += size
	return make([]float32, n), nil
}

// free returns the reservation of one array of n samples.
func (t *Table) free(n int) {
	size, _ := growth.Bytes(n, elemSize)
	t.opts.Release(size)
	t.reserved -= size
}

func (t *Table) valid() bool {
	return t != nil && !t.closed
}

func (t *Table) invalid(op string) error {
	err := fmt.Errorf("%w: nil or closed table", endfkit.ErrInvalidArgument)
	if t == nil {
		return err
	}
	return t.opts.Fail(endfkit.KindTable, op, err)
}

// Push appends a sample. The table grows when it is full.
func (t *Table) Push(xs, energy float32) error {
	if !t.valid() {
		return t.invalid("push")
	}

	if t.n == len(t.xs) {
		if err := t.grow(); err != nil {
			return err
		}
	}

	t.xs[t.n] = xs
	t.energy[t.n] = energy
	t.n++
	return nil
}

func (t *Table) grow() error {
	from := len(t.xs)
	to := growth.Next(from)

	xs, err := t.alloc(to)
	if err != nil {
		t.opts.Grew(endfkit.KindTable, from, to, err)
		return err
	}
	energy, err := t.alloc(to)
	if err != nil {
		// Keep the old arrays; the table stays usable at its old capacity.
		t.free(to)
		t.opts.Grew(endfkit.KindTable, from, to, err)
		return err
	}

	copy(xs, t.xs[:t.n])
	copy(energy, t.energy[:t.n])
	t.free(from)
	t.free(from)
	t.xs = xs
	t.energy = energy

	t.opts.Grew(endfkit.KindTable, from, to, nil)
	return nil
}

func (t *Table) checkIndex(op string, i int) error {
	if !t.valid() {
		return t.invalid(op)
	}
	if i < 0 || i >= t.n {
		return t.opts.Fail(endfkit.KindTable, op, &endfkit.IndexError{Index: i, Len: t.n})
	}
	return nil
}

// XS returns the cross section at index i.
func (t *Table) XS(i int) (float32, error) {
	if err := t.checkIndex("xs", i); err != nil {
		return Invalid, err
	}
	return t.xs[i], nil
}

// Energy returns the energy at index i.
func (t *Table) Energy(i int) (float32, error) {
	if err := t.checkIndex("energy", i); err != nil {
		return Invalid, err
	}
	return t.energy[i], nil
}

// Sample returns the sample at index i.
func (t *Table) Sample(i int) (Sample, error) {
	if err := t.checkIndex("sample", i); err != nil {
		return Sample{XS: Invalid, Energy: Invalid}, err
	}
	return Sample{XS: t.xs[i], Energy: t.energy[i]}, nil
}

// Bounds returns the lowest and highest tabulated energy.
func (t *Table) Bounds() (lo, hi float32, err error) {
	if !t.valid() {
		return Invalid, Invalid, t.invalid("bounds")
	}
	if t.n == 0 {
		return Invalid, Invalid, t.opts.Fail(endfkit.KindTable, "bounds",
			fmt.Errorf("%w: empty table", endfkit.ErrInvalidArgument))
	}
	return t.energy[0], t.energy[t.n-1], nil
}

// Interpolate evaluates the table at energy.
//
// An exact match returns the tabulated cross section. Otherwise the result is
// linearly interpolated between the two samples that bracket energy. Both ends
// of the energy domain are inclusive; queries outside it fail with a
// *endfkit.RangeError. The energies must be sorted ascending.
func (t *Table) Interpolate(energy float32) (float32, error) {
	if !t.valid() {
		return Invalid, t.invalid("interpolate")
	}
	if t.n == 0 {
		return Invalid, t.opts.Fail(endfkit.KindTable, "interpolate",
			fmt.Errorf("%w: empty table", endfkit.ErrInvalidArgument))
	}
	if math.IsNaN(float64(energy)) {
		return Invalid, t.opts.Fail(endfkit.KindTable, "interpolate",
			fmt.Errorf("%w: NaN energy", endfkit.ErrInvalidArgument))
	}

	keys := t.energy[:t.n]
	lo, hi := keys[0], keys[t.n-1]
	if energy < lo || energy > hi {
		return Invalid, t.opts.Fail(endfkit.KindTable, "interpolate",
			&endfkit.RangeError{Value: energy, Min: lo, Max: hi})
	}

	upper, found := slices.BinarySearch(keys, energy)
	if found {
		return t.xs[upper], nil
	}

	// energy lies strictly inside (keys[0], keys[n-1]), so 0 < upper < n.
	lower := upper - 1
	x0, x1 := t.xs[lower], t.xs[upper]
	e0, e1 := keys[lower], keys[upper]
	return x0 + (x1-x0)*(energy-e0)/(e1-e0), nil
}

// Len returns the number of samples.
func (t *Table) Len() int {
	if !t.valid() {
		return 0
	}
	return t.n
}

// Cap returns the number of samples the table can hold without growing.
func (t *Table) Cap() int {
	if !t.valid() {
		return 0
	}
	return len(t.xs)
}

// Close releases both arrays and the budget reservation.
func (t *Table) Close() error {
	if !t.valid() {
		return nil
	}
	t.opts.Release(t.reserved)
	t.reserved = 0
	t.xs = nil
	t.energy = nil
	t.n = 0
	t.closed = true
	return nil
}
