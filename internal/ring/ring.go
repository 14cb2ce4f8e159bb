// Package ring provides a fixed-capacity FIFO buffer. Appending beyond
// capacity evicts the oldest element, so "at most N retained" holds by
// construction rather than by cleanup code at every call site.
package ring

// Buffer is a fixed-capacity FIFO buffer of T.
// The zero value is unusable; construct with New.
type Buffer[T any] struct {
	items []T
	cap   int
}

// New creates an empty Buffer with the given capacity.
// Capacity must be positive.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}
	return &Buffer[T]{cap: capacity}
}

// Push appends v, evicting the oldest element if the buffer is full.
// Returns the evicted element and true when an eviction happened.
func (b *Buffer[T]) Push(v T) (evicted T, ok bool) {
	if len(b.items) == b.cap {
		evicted = b.items[0]
		copy(b.items, b.items[1:])
		b.items[len(b.items)-1] = v
		return evicted, true
	}
	b.items = append(b.items, v)
	return evicted, false
}

// Len returns the number of elements currently held.
func (b *Buffer[T]) Len() int { return len(b.items) }

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return b.cap }

// Values returns the elements oldest-first as a fresh slice.
func (b *Buffer[T]) Values() []T {
	out := make([]T, len(b.items))
	copy(out, b.items)
	return out
}

// Clone returns an independent copy of the buffer.
func (b *Buffer[T]) Clone() *Buffer[T] {
	c := New[T](b.cap)
	c.items = make([]T, len(b.items))
	copy(c.items, b.items)
	return c
}

// FromValues creates a Buffer with the given capacity seeded from vs.
// If vs exceeds capacity, only the newest elements are kept.
func FromValues[T any](capacity int, vs []T) *Buffer[T] {
	b := New[T](capacity)
	if len(vs) > capacity {
		vs = vs[len(vs)-capacity:]
	}
	b.items = make([]T, len(vs))
	copy(b.items, vs)
	return b
}
