package text

import (
	"fmt"

	"github.com/hupe1980/endfkit"
)

// Buffer is a growable, zero-terminated byte string.
type Buffer struct {
	data []byte // len(data) is the capacity; data[n] == 0
	n    int

	opts     endfkit.Options
	reserved int64
	closed   bool
}

var _ endfkit.Container = (*Buffer)(nil)

// New creates a buffer holding a copy of s. Its capacity is len(s)+1.
func New(s string, optFns ...endfkit.Option) (*Buffer, error) {
	opts := endfkit.ApplyOptions(optFns)
	b := &Buffer{opts: opts}
	if err := b.init(len(s) + 1); err != nil {
		return nil, opts.Fail(endfkit.KindBuffer, "new", err)
	}
	b.n = copy(b.data, s)
	return b, nil
}

// FromBytes creates a buffer holding a copy of p. A nil p is rejected.
func FromBytes(p []byte, optFns ...endfkit.Option) (*Buffer, error) {
	opts := endfkit.ApplyOptions(optFns)
	if p == nil {
		return nil, opts.Fail(endfkit.KindBuffer, "new",
			fmt.Errorf("%w: nil input", endfkit.ErrInvalidArgument))
	}
	b := &Buffer{opts: opts}
	if err := b.init(len(p) + 1); err != nil {
		return nil, opts.Fail(endfkit.KindBuffer, "new", err)
	}
	b.n = copy(b.data, p)
	return b, nil
}

func (b *Buffer) init(capacity int) error {
	if err := b.opts.Reserve(int64(capacity)); err != nil {
		return err
	}
	b.reserved = int64(capacity)
	b.data = make([]byte, capacity)
	return nil
}

func (b *Buffer) valid() bool {
	return b != nil && !b.closed
}

func (b *Buffer) invalid(op string) error {
	err := fmt.Errorf("%w: nil or closed buffer", endfkit.ErrInvalidArgument)
	if b == nil {
		return err
	}
	return b.opts.Fail(endfkit.KindBuffer, op, err)
}

// realloc moves the content into a fresh allocation of capacity bytes.
func (b *Buffer) realloc(capacity int) error {
	from := len(b.data)
	if err := b.opts.Reserve(int64(capacity)); err != nil {
		b.opts.Grew(endfkit.KindBuffer, from, capacity, err)
		return err
	}
	data := make([]byte, capacity)
	copy(data, b.data[:b.n+1])
	b.opts.Release(int64(from))
	b.reserved += int64(capacity - from)
	b.data = data

	b.opts.Grew(endfkit.KindBuffer, from, capacity, nil)
	return nil
}

func (b *Buffer) append(p []byte) error {
	need := b.n + len(p) + 1
	if need > len(b.data) {
		// p may alias b.data; the old array stays alive until the copy below.
		if err := b.realloc(need); err != nil {
			return err
		}
	}
	copy(b.data[b.n:], p)
	b.n += len(p)
	b.data[b.n] = 0
	return nil
}

// Concat appends the content of other. other may be b itself.
func (b *Buffer) Concat(other *Buffer) error {
	if !b.valid() {
		return b.invalid("concat")
	}
	if !other.valid() {
		return b.opts.Fail(endfkit.KindBuffer, "concat",
			fmt.Errorf("%w: nil or closed operand", endfkit.ErrInvalidArgument))
	}
	return b.append(other.data[:other.n])
}

// ConcatString appends s.
func (b *Buffer) ConcatString(s string) error {
	if !b.valid() {
		return b.invalid("concat")
	}
	return b.append([]byte(s))
}

// CompareString compares the content with s byte by byte over the shorter
// length. On a common prefix the length difference decides. The result is
// negative, zero or positive like bytes.Compare, but not limited to -1/0/1.
func (b *Buffer) CompareString(s string) (int, error) {
	if !b.valid() {
		return 0, b.invalid("compare")
	}
	return compare(b.data[:b.n], []byte(s)), nil
}

// Compare compares b with other, see CompareString.
func (b *Buffer) Compare(other *Buffer) (int, error) {
	if !b.valid() {
		return 0, b.invalid("compare")
	}
	if !other.valid() {
		return 0, b.opts.Fail(endfkit.KindBuffer, "compare",
			fmt.Errorf("%w: nil or closed operand", endfkit.ErrInvalidArgument))
	}
	return compare(b.data[:b.n], other.data[:other.n]), nil
}

func compare(a, c []byte) int {
	for i := range min(len(a), len(c)) {
		if a[i] != c[i] {
			return int(a[i]) - int(c[i])
		}
	}
	return len(a) - len(c)
}

// Reserve grows the capacity to exactly capacity bytes.
// Requests that would not grow the buffer fail with ErrInvalidArgument and
// leave it untouched.
func (b *Buffer) Reserve(capacity int) error {
	if !b.valid() {
		return b.invalid("reserve")
	}
	if capacity <= len(b.data) {
		return b.opts.Fail(endfkit.KindBuffer, "reserve",
			fmt.Errorf("%w: capacity %d does not exceed %d", endfkit.ErrInvalidArgument, capacity, len(b.data)),
		)
	}
	return b.realloc(capacity)
}

// Copy returns an independent buffer with the same content and capacity.
func (b *Buffer) Copy() (*Buffer, error) {
	if !b.valid() {
		return nil, b.invalid("copy")
	}
	dst := &Buffer{opts: b.opts}
	if err := dst.init(len(b.data)); err != nil {
		return nil, b.opts.Fail(endfkit.KindBuffer, "copy", err)
	}
	dst.n = copy(dst.data, b.data[:b.n])
	return dst, nil
}

// String returns the content.
func (b *Buffer) String() string {
	if !b.valid() {
		return ""
	}
	return string(b.data[:b.n])
}

// Bytes returns a copy of the content without the terminator.
func (b *Buffer) Bytes() []byte {
	if !b.valid() {
		return nil
	}
	out := make([]byte, b.n)
	copy(out, b.data[:b.n])
	return out
}

// Len returns the content length in bytes, excluding the terminator.
func (b *Buffer) Len() int {
	if !b.valid() {
		return 0
	}
	return b.n
}

// Cap returns the allocated size in bytes, including the terminator.
func (b *Buffer) Cap() int {
	if !b.valid() {
		return 0
	}
	return len(b.data)
}

// Close releases the storage and the budget reservation.
func (b *Buffer) Close() error {
	if !b.valid() {
		return nil
	}
	b.opts.Release(b.reserved)
	b.reserved = 0
	b.data = nil
	b.n = 0
	b.closed = true
	return nil
}
