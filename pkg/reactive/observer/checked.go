package observer

import (
	"github.com/vnykmshr/rxflow/pkg/common/cell"
	"github.com/vnykmshr/rxflow/pkg/common/errors"
)

// checkedObserver state machine. Idle -> Busy -> Idle on a value, Busy ->
// Done on a terminal. Entering while Busy or Done is a contract violation.
const (
	stateIdle = iota
	stateBusy
	stateDone
)

type checkedObserver[T any] struct {
	dest  Observer[T]
	state *cell.Cell[int]
}

// Checked wraps dest with contract checking. A notification that starts
// while another is in progress panics with a Reentrancy violation; a
// notification after a terminal panics with AlreadyTerminated. Violations
// are caller bugs — the panic carries a *errors.ViolationError so callers
// that must survive them can classify the failure in recover.
//
// The observer advances to its terminal state before the panic propagates,
// so a broken observer cannot be reused.
func Checked[T any](dest Observer[T]) Observer[T] {
	return &checkedObserver[T]{dest: dest, state: cell.New(stateIdle)}
}

// enter claims the Busy state for the named notification or panics.
func (o *checkedObserver[T]) enter(op string) {
	if cell.CompareAndSwap(o.state, stateIdle, stateBusy) {
		return
	}
	switch o.state.Get() {
	case stateDone:
		panic(errors.NewViolationError(op, errors.AlreadyTerminated))
	default:
		// Another notification is in flight on this observer. Mark it dead
		// so it cannot be reused, then report the bug.
		o.state.Set(stateDone)
		panic(errors.NewViolationError(op, errors.Reentrancy))
	}
}

func (o *checkedObserver[T]) OnNext(value T) {
	o.enter("OnNext")
	// Release must run on every exit path, including a panic from dest.
	// A nested violation has already moved the state to Done; leave it.
	defer cell.CompareAndSwap(o.state, stateBusy, stateIdle)
	o.dest.OnNext(value)
}

func (o *checkedObserver[T]) OnError(err error) {
	o.enter("OnError")
	defer o.state.Set(stateDone)
	o.dest.OnError(err)
}

func (o *checkedObserver[T]) OnCompleted() {
	o.enter("OnCompleted")
	defer o.state.Set(stateDone)
	o.dest.OnCompleted()
}
