package dict

import (
	"fmt"
	"iter"
	"math"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/endfkit"
	"github.com/hupe1980/endfkit/internal/growth"
)

const (
	// InitialBuckets is the bucket count of a new map.
	InitialBuckets = 3
	// MaxLoadFactor is the entries-per-bucket ratio that triggers a rehash.
	MaxLoadFactor = 0.7
	// Missing is the value returned alongside a non-nil error.
	Missing float32 = math.MaxFloat32
)

const (
	bucketSize   = int64(unsafe.Sizeof((*node)(nil)))
	nodeOverhead = int64(unsafe.Sizeof(node{}))
)

type node struct {
	key   string
	value float32
	next  *node
}

// Map is a string-keyed float32 hash map.
type Map struct {
	buckets  []*node
	n        int
	occupied *roaring.Bitmap

	opts     endfkit.Options
	reserved int64
	closed   bool
}

var _ endfkit.Container = (*Map)(nil)

// Hash returns the djb2 hash of key.
func Hash(key string) uint64 {
	h := uint64(5381)
	for i := 0; i < len(key); i++ {
		h = h*33 + uint64(key[i])
	}
	return h
}

// New creates an empty map with InitialBuckets buckets.
func New(optFns ...endfkit.Option) (*Map, error) {
	opts := endfkit.ApplyOptions(optFns)
	m := &Map{
		occupied: roaring.New(),
		opts:     opts,
	}
	size := InitialBuckets * bucketSize
	if err := opts.Reserve(size); err != nil {
		return nil, opts.Fail(endfkit.KindMap, "new", err)
	}
	m.reserved = size
	m.buckets = make([]*node, InitialBuckets)
	return m, nil
}

func (m *Map) valid() bool {
	return m != nil && !m.closed
}

func (m *Map) invalid(op string) error {
	err := fmt.Errorf("%w: nil or closed map", endfkit.ErrInvalidArgument)
	if m == nil {
		return err
	}
	return m.opts.Fail(endfkit.KindMap, op, err)
}

func (m *Map) index(key string) int {
	return int(Hash(key) % uint64(len(m.buckets)))
}

func (m *Map) find(key string) *node {
	for nd := m.buckets[m.index(key)]; nd != nil; nd = nd.next {
		if nd.key == key {
			return nd
		}
	}
	return nil
}

// Insert adds key with value. An existing key is left untouched and the
// insert fails with ErrKeyExists.
func (m *Map) Insert(key string, value float32) error {
	if !m.valid() {
		return m.invalid("insert")
	}
	if m.find(key) != nil {
		return m.opts.Fail(endfkit.KindMap, "insert", endfkit.NewKeyError(key, endfkit.ErrKeyExists))
	}

	if float64(m.n) >= float64(len(m.buckets))*MaxLoadFactor {
		if err := m.rehash(growth.Next(len(m.buckets))); err != nil {
			return err
		}
	}

	size := nodeOverhead + int64(len(key))
	if err := m.opts.Reserve(size); err != nil {
		return m.opts.Fail(endfkit.KindMap, "insert", err, "key", key)
	}
	m.reserved += size

	idx := m.index(key)
	m.buckets[idx] = &node{key: key, value: value, next: m.buckets[idx]}
	m.occupied.Add(uint32(idx))
	m.n++
	return nil
}

// rehash redistributes every node over buckets new buckets.
func (m *Map) rehash(buckets int) error {
	from := len(m.buckets)
	size := int64(buckets) * bucketSize
	if err := m.opts.Reserve(size); err != nil {
		m.opts.Grew(endfkit.KindMap, from, buckets, err)
		return err
	}

	next := make([]*node, buckets)
	occupied := roaring.New()
	for _, head := range m.buckets {
		for nd := head; nd != nil; {
			following := nd.next
			idx := int(Hash(nd.key) % uint64(buckets))
			nd.next = next[idx]
			next[idx] = nd
			occupied.Add(uint32(idx))
			nd = following
		}
	}

	old := int64(from) * bucketSize
	m.opts.Release(old)
	m.reserved += size - old
	m.buckets = next
	m.occupied = occupied

	m.opts.Grew(endfkit.KindMap, from, buckets, nil)
	return nil
}

// Remove deletes key and returns its value.
func (m *Map) Remove(key string) (float32, error) {
	if !m.valid() {
		return Missing, m.invalid("remove")
	}

	idx := m.index(key)
	var prev *node
	for nd := m.buckets[idx]; nd != nil; prev, nd = nd, nd.next {
		if nd.key != key {
			continue
		}
		if prev == nil {
			m.buckets[idx] = nd.next
		} else {
			prev.next = nd.next
		}
		if m.buckets[idx] == nil {
			m.occupied.Remove(uint32(idx))
		}
		size := nodeOverhead + int64(len(nd.key))
		m.opts.Release(size)
		m.reserved -= size
		m.n--
		return nd.value, nil
	}
	return Missing, m.opts.Fail(endfkit.KindMap, "remove", endfkit.NewKeyError(key, endfkit.ErrKeyNotFound))
}

// Get returns the value stored for key.
func (m *Map) Get(key string) (float32, error) {
	if !m.valid() {
		return Missing, m.invalid("get")
	}
	nd := m.find(key)
	if nd == nil {
		return Missing, m.opts.Fail(endfkit.KindMap, "get", endfkit.NewKeyError(key, endfkit.ErrKeyNotFound))
	}
	return nd.value, nil
}

// Contains reports whether key is present.
func (m *Map) Contains(key string) bool {
	return m.valid() && m.find(key) != nil
}

// Update replaces the value of an existing key. A missing key fails with
// ErrKeyNotFound and nothing is inserted.
func (m *Map) Update(key string, value float32) error {
	if !m.valid() {
		return m.invalid("update")
	}
	nd := m.find(key)
	if nd == nil {
		return m.opts.Fail(endfkit.KindMap, "update", endfkit.NewKeyError(key, endfkit.ErrKeyNotFound))
	}
	nd.value = value
	return nil
}

// All returns an iterator over all entries in no particular order.
// The map must not be modified during iteration.
func (m *Map) All() iter.Seq2[string, float32] {
	return func(yield func(string, float32) bool) {
		if !m.valid() {
			return
		}
		for _, head := range m.buckets {
			for nd := head; nd != nil; nd = nd.next {
				if !yield(nd.key, nd.value) {
					return
				}
			}
		}
	}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if !m.valid() {
		return 0
	}
	return m.n
}

// Cap returns the number of buckets.
func (m *Map) Cap() int {
	if !m.valid() {
		return 0
	}
	return len(m.buckets)
}

// OccupiedBuckets returns the number of buckets holding at least one entry.
func (m *Map) OccupiedBuckets() int {
	if !m.valid() {
		return 0
	}
	return int(m.occupied.GetCardinality())
}

// LoadFactor returns Len()/Cap().
func (m *Map) LoadFactor() float64 {
	if !m.valid() || len(m.buckets) == 0 {
		return 0
	}
	return float64(m.n) / float64(len(m.buckets))
}

// Close frees every chain and the bucket array.
func (m *Map) Close() error {
	if !m.valid() {
		return nil
	}
	for i, head := range m.buckets {
		for nd := head; nd != nil; {
			following := nd.next
			nd.next = nil
			nd = following
		}
		m.buckets[i] = nil
	}
	m.opts.Release(m.reserved)
	m.reserved = 0
	m.buckets = nil
	m.occupied.Clear()
	m.n = 0
	m.closed = true
	return nil
}
