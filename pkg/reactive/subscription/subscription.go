// Package subscription provides cancelable handles for in-flight work.
//
// Every scheduling operation and observer chain in rxflow returns a
// Subscription. Unsubscribing is idempotent and safe from any goroutine;
// once unsubscribed a handle is inert.
package subscription

import "sync"

// Subscription is a cancelable handle for work in flight.
type Subscription interface {
	// Unsubscribe releases the work this handle represents. Calling it
	// again is a no-op. An Unsubscribe racing with dispatch must not leave
	// the work half-done.
	Unsubscribe()

	// IsUnsubscribed reports whether Unsubscribe has been called.
	IsUnsubscribed() bool
}

// empty is the distinguished subscription with nothing to release.
type empty struct{}

func (empty) Unsubscribe()         {}
func (empty) IsUnsubscribed() bool { return true }

var emptySubscription Subscription = empty{}

// Empty returns the distinguished empty subscription. It is always already
// unsubscribed and unsubscribing it does nothing.
func Empty() Subscription {
	return emptySubscription
}

// funcSubscription runs a teardown function exactly once.
type funcSubscription struct {
	mu           sync.Mutex
	unsubscribed bool
	teardown     func()
}

// New creates a subscription that invokes teardown on the first Unsubscribe.
// A nil teardown yields a subscription that only tracks its state.
func New(teardown func()) Subscription {
	return &funcSubscription{teardown: teardown}
}

func (s *funcSubscription) Unsubscribe() {
	s.mu.Lock()
	if s.unsubscribed {
		s.mu.Unlock()
		return
	}
	s.unsubscribed = true
	teardown := s.teardown
	s.teardown = nil
	s.mu.Unlock()

	if teardown != nil {
		teardown()
	}
}

func (s *funcSubscription) IsUnsubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribed
}
