// Package cell provides a small synchronized cell holding a single value.
//
// A Cell is the library's unit of shared mutable state: observer state
// machines, scheduler queues and in-flight subscription slots all live in
// cells. Critical sections must stay brief; no user callback is ever invoked
// while a cell is held.
package cell

import "sync"

// Cell holds one value of type V with linearizable access.
type Cell[V any] struct {
	mu sync.Mutex
	v  V
}

// New creates a cell holding the given initial value.
func New[V any](v V) *Cell[V] {
	return &Cell[V]{v: v}
}

// Get returns the current value.
func (c *Cell[V]) Get() V {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

// Set replaces the current value.
func (c *Cell[V]) Set(v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v = v
}

// Swap replaces the current value and returns the previous one.
func (c *Cell[V]) Swap(v V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.v
	c.v = v
	return old
}

// Synchronize runs fn with exclusive access to the cell's contents and
// returns fn's result. The pointer passed to fn is only valid for the
// duration of the call.
func Synchronize[V, R any](c *Cell[V], fn func(v *V) R) R {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(&c.v)
}

// CompareAndSwap sets the cell to new iff it currently holds old.
// Returns true if the swap happened.
func CompareAndSwap[V comparable](c *Cell[V], old, new V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.v != old {
		return false
	}
	c.v = new
	return true
}
