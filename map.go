package automaton

import (
	"iter"
)

// Hashable is a key of HashMap. Keys of different types may be equal: a mutable StateSet finds the
// entry stored under the FrozenIntSet with the same members.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// HashMap A chained hash table keyed by Hashable values. Subset construction uses it to map
// identity sets to the state built for them. It is not safe for concurrent use.
type HashMap[T any] struct {
	buckets    []*bucketEntry[T]
	size       int
	loadFactor float64
}

type bucketEntry[T any] struct {
	key   Hashable
	value T
	next  *bucketEntry[T]
}

type hashMapConfig struct {
	capacity   int
	loadFactor float64
}

// OptionsHashMap configures NewHashMap.
type OptionsHashMap func(*hashMapConfig)

// WithCapacity sets the initial bucket count, rounded up to a power of two.
func WithCapacity(capacity int) OptionsHashMap {
	return func(c *hashMapConfig) {
		c.capacity = capacity
	}
}

// WithLoadFactor sets the size/bucket ratio above which the table doubles. Non-positive values are
// ignored.
func WithLoadFactor(loadFactor float64) OptionsHashMap {
	return func(c *hashMapConfig) {
		if loadFactor > 0 {
			c.loadFactor = loadFactor
		}
	}
}

func NewHashMap[T any](options ...OptionsHashMap) *HashMap[T] {
	cfg := hashMapConfig{capacity: 1, loadFactor: 0.75}
	for _, opt := range options {
		opt(&cfg)
	}

	n := 1
	for n < cfg.capacity {
		n <<= 1
	}
	return &HashMap[T]{
		buckets:    make([]*bucketEntry[T], n),
		loadFactor: cfg.loadFactor,
	}
}

func (m *HashMap[T]) slot(key Hashable) int {
	return int(key.Hash() & uint64(len(m.buckets)-1))
}

// lookup Returns the link pointing at the entry equal to key, or the nil link ending its chain.
func (m *HashMap[T]) lookup(key Hashable) **bucketEntry[T] {
	link := &m.buckets[m.slot(key)]
	for *link != nil && !(*link).key.Equals(key) {
		link = &(*link).next
	}
	return link
}

// Set Inserts or replaces the value for key.
func (m *HashMap[T]) Set(key Hashable, value T) {
	link := m.lookup(key)
	if *link != nil {
		(*link).value = value
		return
	}
	*link = &bucketEntry[T]{key: key, value: value}
	m.size++

	if float64(m.size) > m.loadFactor*float64(len(m.buckets)) {
		m.grow()
	}
}

func (m *HashMap[T]) Get(key Hashable) (T, bool) {
	if e := *m.lookup(key); e != nil {
		return e.value, true
	}
	var zero T
	return zero, false
}

func (m *HashMap[T]) Delete(key Hashable) {
	link := m.lookup(key)
	if *link == nil {
		return
	}
	*link = (*link).next
	m.size--
}

// grow doubles the bucket array and relinks every entry.
func (m *HashMap[T]) grow() {
	old := m.buckets
	m.buckets = make([]*bucketEntry[T], 2*len(old))
	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			i := m.slot(e.key)
			e.next = m.buckets[i]
			m.buckets[i] = e
			e = next
		}
	}
}

func (m *HashMap[T]) Size() int {
	return m.size
}

// Iterator yields every key/value pair in bucket order.
func (m *HashMap[T]) Iterator() iter.Seq2[Hashable, T] {
	return func(yield func(Hashable, T) bool) {
		for _, head := range m.buckets {
			for e := head; e != nil; e = e.next {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}
