package scheduler

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/rxflow/internal/testutil"
	"github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
)

func TestEventLoopExecutesActions(t *testing.T) {
	l := NewEventLoop()
	defer func() { <-l.Stop() }()

	var executed int32
	for i := 0; i < 10; i++ {
		Schedule(l, func() subscription.Subscription {
			atomic.AddInt32(&executed, 1)
			return subscription.Empty()
		})
	}

	testutil.WaitForInt32(t, &executed, 10, time.Second)
}

func TestEventLoopRunsOneActionAtATime(t *testing.T) {
	l := NewEventLoop()
	defer func() { <-l.Stop() }()

	var inside, total int32
	for i := 0; i < 50; i++ {
		Schedule(l, func() subscription.Subscription {
			if atomic.AddInt32(&inside, 1) != 1 {
				t.Error("two actions ran concurrently on the loop")
			}
			atomic.AddInt32(&total, 1)
			atomic.AddInt32(&inside, -1)
			return subscription.Empty()
		})
	}

	testutil.WaitForInt32(t, &total, 50, time.Second)
}

func TestEventLoopRespectsDueTimeOrder(t *testing.T) {
	l := NewEventLoop()
	defer func() { <-l.Stop() }()

	var mu sync.Mutex
	var order []string
	record := func(name string) Action {
		return func() subscription.Subscription {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return subscription.Empty()
		}
	}

	var done int32
	ScheduleRelative(l, 60*time.Millisecond, func() subscription.Subscription {
		record("later")()
		atomic.AddInt32(&done, 1)
		return subscription.Empty()
	})
	// Scheduled second but due earlier: the loop must re-examine its
	// queue when an earlier arrival lands during a timed wait.
	ScheduleRelative(l, 10*time.Millisecond, record("sooner"))

	testutil.WaitForInt32(t, &done, 1, time.Second)

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "sooner" || order[1] != "later" {
		t.Errorf("got order %v, want [sooner later]", order)
	}
}

func TestEventLoopCancelBeforeDispatch(t *testing.T) {
	l := NewEventLoop()
	defer func() { <-l.Stop() }()

	var ran int32
	sub := ScheduleRelative(l, 50*time.Millisecond, func() subscription.Subscription {
		atomic.AddInt32(&ran, 1)
		return subscription.Empty()
	})
	sub.Unsubscribe()

	time.Sleep(100 * time.Millisecond)
	testutil.AssertEqual(t, atomic.LoadInt32(&ran), int32(0))
}

func TestEventLoopSurvivesPanickingAction(t *testing.T) {
	l := NewEventLoop()
	defer func() { <-l.Stop() }()

	Schedule(l, func() subscription.Subscription {
		panic("action failed")
	})

	var ran int32
	Schedule(l, func() subscription.Subscription {
		atomic.AddInt32(&ran, 1)
		return subscription.Empty()
	})

	testutil.WaitForInt32(t, &ran, 1, time.Second)
}

func TestEventLoopStopDropsPendingWork(t *testing.T) {
	l := NewEventLoop()

	if err := l.Err(); err != nil {
		t.Errorf("got %v, want nil from a running loop", err)
	}

	var ran int32
	ScheduleRelative(l, 100*time.Millisecond, func() subscription.Subscription {
		atomic.AddInt32(&ran, 1)
		return subscription.Empty()
	})
	<-l.Stop()

	if err := l.Err(); err != errors.ErrSchedulerStopped {
		t.Errorf("got %v, want ErrSchedulerStopped", err)
	}

	// Scheduling on a stopped loop is a no-op returning the empty handle.
	sub := Schedule(l, func() subscription.Subscription {
		atomic.AddInt32(&ran, 1)
		return subscription.Empty()
	})
	testutil.AssertEqual(t, sub.IsUnsubscribed(), true)

	time.Sleep(150 * time.Millisecond)
	testutil.AssertEqual(t, atomic.LoadInt32(&ran), int32(0))
}

func TestEventLoopRecursiveCancelHalts(t *testing.T) {
	l := NewEventLoop()
	defer func() { <-l.Stop() }()

	var count int32
	reached := make(chan struct{})
	var once sync.Once
	sub := ScheduleRecursive(l, func(reschedule func()) subscription.Subscription {
		n := atomic.AddInt32(&count, 1)
		if n == 3 {
			once.Do(func() { close(reached) })
		}
		time.Sleep(time.Millisecond)
		reschedule()
		return subscription.Empty()
	})

	<-reached
	sub.Unsubscribe()
	settled := atomic.LoadInt32(&count)

	// Cancellation halts the recursion within one further step.
	time.Sleep(50 * time.Millisecond)
	final := atomic.LoadInt32(&count)
	if final > settled+1 {
		t.Errorf("recursion continued after cancel: %d executions after %d", final, settled)
	}
}
