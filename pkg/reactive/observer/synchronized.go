package observer

import (
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/rxflow/internal/goid"
	"github.com/vnykmshr/rxflow/pkg/common/asynclock"
)

// reentrantGate is a mutex that may be re-acquired by the goroutine that
// already holds it. Downstream operators legitimately re-enter from the
// same goroutine (synchronous emission from inside a notification), so a
// plain sync.Mutex would self-deadlock here.
type reentrantGate struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

func (g *reentrantGate) lock() {
	id := goid.ID()
	if g.owner.Load() == id {
		g.depth++
		return
	}
	g.mu.Lock()
	g.owner.Store(id)
	g.depth = 1
}

func (g *reentrantGate) unlock() {
	g.depth--
	if g.depth == 0 {
		g.owner.Store(0)
		g.mu.Unlock()
	}
}

type synchronizedObserver[T any] struct {
	dest Observer[T]
	gate *reentrantGate
}

// Synchronize wraps dest so that notifications from multiple goroutines
// are mutually exclusive. The gate is reentrant: a notification raised
// from inside another notification on the same goroutine runs inline.
// Compare SynchronizeAsync, which queues reentrant work instead.
func Synchronize[T any](dest Observer[T]) Observer[T] {
	return &synchronizedObserver[T]{dest: dest, gate: &reentrantGate{}}
}

func (o *synchronizedObserver[T]) OnNext(value T) {
	o.gate.lock()
	defer o.gate.unlock()
	o.dest.OnNext(value)
}

func (o *synchronizedObserver[T]) OnError(err error) {
	o.gate.lock()
	defer o.gate.unlock()
	o.dest.OnError(err)
}

func (o *synchronizedObserver[T]) OnCompleted() {
	o.gate.lock()
	defer o.gate.unlock()
	o.dest.OnCompleted()
}

type asyncLockObserver[T any] struct {
	dest Observer[T]
	lock *asynclock.Lock
}

// SynchronizeAsync wraps dest so that notifications are serialized on an
// AsyncLock. Notifications from multiple producers run one at a time, and
// a notification raised while the caller already holds the lock is queued
// rather than executed inline — this bounds stack depth and keeps dispatch
// fair, at the cost of deferring reentrant work.
//
// The destination is additionally guarded by Safe, so terminal finality
// holds even though delivery is deferred.
func SynchronizeAsync[T any](dest Observer[T]) Observer[T] {
	return SynchronizeAsyncWith(dest, asynclock.New())
}

// SynchronizeAsyncWith is SynchronizeAsync with a caller-provided lock,
// letting several observers share one serialization domain.
func SynchronizeAsyncWith[T any](dest Observer[T], lock *asynclock.Lock) Observer[T] {
	return &asyncLockObserver[T]{dest: Safe(dest), lock: lock}
}

func (o *asyncLockObserver[T]) OnNext(value T) {
	o.lock.Wait(func() { o.dest.OnNext(value) })
}

func (o *asyncLockObserver[T]) OnError(err error) {
	o.lock.Wait(func() { o.dest.OnError(err) })
}

func (o *asyncLockObserver[T]) OnCompleted() {
	o.lock.Wait(func() { o.dest.OnCompleted() })
}
