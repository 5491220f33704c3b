package scheduler

import (
	"sync/atomic"

	"github.com/vnykmshr/rxflow/pkg/common/cell"
	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
)

// actionState tracks cancellation and the inner subscription returned by
// a dispatched action.
type actionState struct {
	canceled bool
	inner    subscription.Subscription
}

// discardableAction is a scheduled action that can be canceled before or
// during dispatch. The ready flag transitions true -> false exactly once:
// either run wins and the action executes, or cancel wins and it never
// does. Cancel after dispatch releases the inner work the action returned.
type discardableAction struct {
	ready  atomic.Bool
	state  *cell.Cell[actionState]
	action Action
	cancel subscription.Subscription
}

func newDiscardableAction(action Action) *discardableAction {
	d := &discardableAction{
		action: action,
		state:  cell.New(actionState{}),
	}
	d.ready.Store(true)
	d.cancel = subscription.New(d.discard)
	return d
}

// run dispatches the action if it is still ready. The inner subscription
// is stored for later cancel propagation; if a cancel slipped in while the
// action was executing, the inner work is released immediately.
func (d *discardableAction) run() {
	if !d.ready.CompareAndSwap(true, false) {
		return
	}
	inner := d.action()
	if inner == nil {
		inner = subscription.Empty()
	}
	var late subscription.Subscription
	cell.Synchronize(d.state, func(s *actionState) struct{} {
		if s.canceled {
			late = inner
		} else {
			s.inner = inner
		}
		return struct{}{}
	})
	if late != nil {
		late.Unsubscribe()
	}
}

func (d *discardableAction) discard() {
	d.ready.Store(false)
	var inner subscription.Subscription
	cell.Synchronize(d.state, func(s *actionState) struct{} {
		s.canceled = true
		inner = s.inner
		s.inner = nil
		return struct{}{}
	})
	if inner != nil {
		inner.Unsubscribe()
	}
}

// Subscription returns the cancel handle exposed to callers.
func (d *discardableAction) Subscription() subscription.Subscription {
	return d.cancel
}
