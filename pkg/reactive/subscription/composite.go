package subscription

import "sync"

// Composite aggregates child subscriptions. Unsubscribing the composite
// unsubscribes all current children and every child added afterwards.
type Composite struct {
	mu           sync.Mutex
	unsubscribed bool
	children     []Subscription
}

// NewComposite creates a composite containing the given children.
func NewComposite(children ...Subscription) *Composite {
	c := &Composite{}
	c.children = append(c.children, children...)
	return c
}

// Add attaches child to the composite. If the composite is already
// unsubscribed the child is unsubscribed immediately.
func (c *Composite) Add(child Subscription) {
	if child == nil {
		return
	}
	c.mu.Lock()
	if c.unsubscribed {
		c.mu.Unlock()
		child.Unsubscribe()
		return
	}
	c.children = append(c.children, child)
	c.mu.Unlock()
}

// Remove detaches child from the composite without unsubscribing it.
func (c *Composite) Remove(child Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.children {
		if s == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

// Unsubscribe unsubscribes all children. Children are released outside the
// composite's lock so a child's teardown may safely touch the composite.
func (c *Composite) Unsubscribe() {
	c.mu.Lock()
	if c.unsubscribed {
		c.mu.Unlock()
		return
	}
	c.unsubscribed = true
	children := c.children
	c.children = nil
	c.mu.Unlock()

	for _, child := range children {
		child.Unsubscribe()
	}
}

// IsUnsubscribed reports whether the composite has been unsubscribed.
func (c *Composite) IsUnsubscribed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsubscribed
}

// MultipleAssignment holds at most one replaceable child subscription.
// Assigning a new child unsubscribes the previous one; unsubscribing the
// slot unsubscribes the current child and every child assigned afterwards.
type MultipleAssignment struct {
	mu           sync.Mutex
	unsubscribed bool
	current      Subscription
}

// NewMultipleAssignment creates an empty slot.
func NewMultipleAssignment() *MultipleAssignment {
	return &MultipleAssignment{}
}

// Set replaces the current child with s, unsubscribing the previous child.
// If the slot is already unsubscribed, s is unsubscribed immediately.
func (m *MultipleAssignment) Set(s Subscription) {
	m.mu.Lock()
	if m.unsubscribed {
		m.mu.Unlock()
		if s != nil {
			s.Unsubscribe()
		}
		return
	}
	prev := m.current
	m.current = s
	m.mu.Unlock()

	if prev != nil {
		prev.Unsubscribe()
	}
}

// Get returns the current child, or nil if the slot is empty.
func (m *MultipleAssignment) Get() Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Unsubscribe unsubscribes the current child and marks the slot dead.
func (m *MultipleAssignment) Unsubscribe() {
	m.mu.Lock()
	if m.unsubscribed {
		m.mu.Unlock()
		return
	}
	m.unsubscribed = true
	current := m.current
	m.current = nil
	m.mu.Unlock()

	if current != nil {
		current.Unsubscribe()
	}
}

// IsUnsubscribed reports whether the slot has been unsubscribed.
func (m *MultipleAssignment) IsUnsubscribed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unsubscribed
}
