package vector

import (
	"fmt"

	"github.com/hupe1980/endfkit"
	"github.com/hupe1980/endfkit/internal/growth"
)

// Invalid is the value returned alongside a non-nil error.
const Invalid float32 = -1

const elemSize = 4

// Vector is a growable array of float32.
type Vector struct {
	data []float32 // len(data) is the capacity
	n    int

	opts     endfkit.Options
	reserved int64
	closed   bool
}

var _ endfkit.Container = (*Vector)(nil)

// New creates an empty vector with room for capacity elements.
func New(capacity int, optFns ...endfkit.Option) (*Vector, error) {
	opts := endfkit.ApplyOptions(optFns)
	if capacity < 0 {
		return nil, opts.Fail(endfkit.KindVector, "new",
			fmt.Errorf("%w: negative capacity %d", endfkit.ErrInvalidArgument, capacity))
	}

	v := &Vector{opts: opts}
	data, err := v.alloc(capacity)
	if err != nil {
		return nil, opts.Fail(endfkit.KindVector, "new", err, "capacity", capacity)
	}
	v.data = data
	return v, nil
}

func (v *Vector) alloc(n int) ([]float32, error) {
	size, err := growth.Bytes(n, elemSize)
	if err != nil {
		return nil, endfkit.NewAllocationError(0, err)
	}
	if err := v.opts.Reserve(size); err != nil {
		return nil, err
	}
	v.reserved += size
	return make([]float32, n), nil
}

func (v *Vector) free(n int) {
	size, _ := growth.Bytes(n, elemSize)
	v.opts.Release(size)
	v.reserved -= size
}

func (v *Vector) valid() bool {
	return v != nil && !v.closed
}

func (v *Vector) invalid(op string) error {
	err := fmt.Errorf("%w: nil or closed vector", endfkit.ErrInvalidArgument)
	if v == nil {
		return err
	}
	return v.opts.Fail(endfkit.KindVector, op, err)
}

// ensureRoom grows the vector if it is full.
func (v *Vector) ensureRoom() error {
	if v.n < len(v.data) {
		return nil
	}

	from := len(v.data)
	to := growth.Next(from)
	data, err := v.alloc(to)
	if err != nil {
		v.opts.Grew(endfkit.KindVector, from, to, err)
		return err
	}
	copy(data, v.data[:v.n])
	v.free(from)
	v.data = data

	v.opts.Grew(endfkit.KindVector, from, to, nil)
	return nil
}

// PushBack appends x.
func (v *Vector) PushBack(x float32) error {
	if !v.valid() {
		return v.invalid("push_back")
	}
	if err := v.ensureRoom(); err != nil {
		return err
	}
	v.data[v.n] = x
	v.n++
	return nil
}

// PushFront prepends x, shifting every element one slot to the right.
func (v *Vector) PushFront(x float32) error {
	if !v.valid() {
		return v.invalid("push_front")
	}
	return v.insert(x, 0)
}

// InsertAt inserts x at index, shifting the elements at and after index one
// slot to the right. index may equal Len, which appends.
func (v *Vector) InsertAt(x float32, index int) error {
	if !v.valid() {
		return v.invalid("insert")
	}
	if index < 0 || index > v.n {
		return v.opts.Fail(endfkit.KindVector, "insert", &endfkit.IndexError{Index: index, Len: v.n})
	}
	switch index {
	case 0:
		return v.PushFront(x)
	case v.n:
		return v.PushBack(x)
	default:
		return v.insert(x, index)
	}
}

func (v *Vector) insert(x float32, index int) error {
	if err := v.ensureRoom(); err != nil {
		return err
	}
	copy(v.data[index+1:v.n+1], v.data[index:v.n])
	v.data[index] = x
	v.n++
	return nil
}

// PopBack removes and returns the last element.
func (v *Vector) PopBack() (float32, error) {
	if err := v.checkPop("pop_back"); err != nil {
		return Invalid, err
	}
	v.n--
	return v.data[v.n], nil
}

// PopFront removes and returns the first element.
func (v *Vector) PopFront() (float32, error) {
	if err := v.checkPop("pop_front"); err != nil {
		return Invalid, err
	}
	return v.remove(0), nil
}

// PopAt removes and returns the element at index.
func (v *Vector) PopAt(index int) (float32, error) {
	if err := v.checkPop("pop_at"); err != nil {
		return Invalid, err
	}
	if index < 0 || index >= v.n {
		return Invalid, v.opts.Fail(endfkit.KindVector, "pop_at", &endfkit.IndexError{Index: index, Len: v.n})
	}
	return v.remove(index), nil
}

func (v *Vector) checkPop(op string) error {
	if !v.valid() {
		return v.invalid(op)
	}
	if v.n == 0 {
		return v.opts.Fail(endfkit.KindVector, op,
			fmt.Errorf("%w: pop from empty vector", endfkit.ErrInvalidArgument))
	}
	return nil
}

func (v *Vector) remove(index int) float32 {
	x := v.data[index]
	copy(v.data[index:v.n-1], v.data[index+1:v.n])
	v.n--
	return x
}

// Get returns the element at index.
func (v *Vector) Get(index int) (float32, error) {
	if !v.valid() {
		return Invalid, v.invalid("get")
	}
	if index < 0 || index >= v.n {
		return Invalid, v.opts.Fail(endfkit.KindVector, "get", &endfkit.IndexError{Index: index, Len: v.n})
	}
	return v.data[index], nil
}

// Set replaces the element at index.
func (v *Vector) Set(index int, x float32) error {
	if !v.valid() {
		return v.invalid("set")
	}
	if index < 0 || index >= v.n {
		return v.opts.Fail(endfkit.KindVector, "set", &endfkit.IndexError{Index: index, Len: v.n})
	}
	v.data[index] = x
	return nil
}

// Values returns a copy of the live elements.
func (v *Vector) Values() []float32 {
	if !v.valid() {
		return nil
	}
	out := make([]float32, v.n)
	copy(out, v.data[:v.n])
	return out
}

// Copy returns an independent vector with the same elements and capacity.
// The clone shares the source's options, including its budget.
func (v *Vector) Copy() (*Vector, error) {
	if !v.valid() {
		return nil, v.invalid("copy")
	}
	dst, err := New(len(v.data), v.opts.Inherit())
	if err != nil {
		return nil, err
	}
	for _, x := range v.data[:v.n] {
		if err := dst.PushBack(x); err != nil {
			_ = dst.Close()
			return nil, err
		}
	}
	return dst, nil
}

// Len returns the number of elements.
func (v *Vector) Len() int {
	if !v.valid() {
		return 0
	}
	return v.n
}

// Cap returns the number of elements the vector can hold without growing.
func (v *Vector) Cap() int {
	if !v.valid() {
		return 0
	}
	return len(v.data)
}

// Close releases the storage and the budget reservation.
func (v *Vector) Close() error {
	if !v.valid() {
		return nil
	}
	v.opts.Release(v.reserved)
	v.reserved = 0
	v.data = nil
	v.n = 0
	v.closed = true
	return nil
}
