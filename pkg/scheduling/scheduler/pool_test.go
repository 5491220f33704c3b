package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/rxflow/internal/testutil"
	"github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
)

func TestPoolExecutesActions(t *testing.T) {
	p := NewPool(4, 16)
	defer func() { <-p.Shutdown() }()

	var executed int32
	for i := 0; i < 32; i++ {
		Schedule(p, func() subscription.Subscription {
			atomic.AddInt32(&executed, 1)
			return subscription.Empty()
		})
	}

	testutil.WaitForInt32(t, &executed, 32, time.Second)
}

func TestPoolDefaults(t *testing.T) {
	p := NewPoolWithConfig(PoolConfig{})
	defer func() { <-p.Shutdown() }()

	var done int32
	Schedule(p, func() subscription.Subscription {
		atomic.AddInt32(&done, 1)
		return subscription.Empty()
	})
	testutil.WaitForInt32(t, &done, 1, time.Second)
}

func TestPoolDelayedAction(t *testing.T) {
	p := NewPool(2, 8)
	defer func() { <-p.Shutdown() }()

	const delay = 30 * time.Millisecond
	start := time.Now()
	var elapsed atomic.Int64
	var done int32
	ScheduleRelative(p, delay, func() subscription.Subscription {
		elapsed.Store(int64(time.Since(start)))
		atomic.AddInt32(&done, 1)
		return subscription.Empty()
	})

	testutil.WaitForInt32(t, &done, 1, time.Second)
	if got := time.Duration(elapsed.Load()); got < delay {
		t.Errorf("action ran after %v, want at least %v", got, delay)
	}
}

func TestPoolCancelBeforeDueTime(t *testing.T) {
	p := NewPool(2, 8)
	defer func() { <-p.Shutdown() }()

	var ran int32
	sub := ScheduleRelative(p, 50*time.Millisecond, func() subscription.Subscription {
		atomic.AddInt32(&ran, 1)
		return subscription.Empty()
	})
	sub.Unsubscribe()

	time.Sleep(100 * time.Millisecond)
	testutil.AssertEqual(t, atomic.LoadInt32(&ran), int32(0))
}

func TestPoolSurvivesPanickingAction(t *testing.T) {
	p := NewPool(1, 8)
	defer func() { <-p.Shutdown() }()

	Schedule(p, func() subscription.Subscription {
		panic("action failed")
	})

	var ran int32
	Schedule(p, func() subscription.Subscription {
		atomic.AddInt32(&ran, 1)
		return subscription.Empty()
	})
	testutil.WaitForInt32(t, &ran, 1, time.Second)
}

func TestPoolShutdownDropsNewWork(t *testing.T) {
	p := NewPool(2, 8)

	if err := p.Err(); err != nil {
		t.Errorf("got %v, want nil from a running pool", err)
	}
	<-p.Shutdown()
	if err := p.Err(); err != errors.ErrSchedulerStopped {
		t.Errorf("got %v, want ErrSchedulerStopped", err)
	}

	var ran int32
	sub := Schedule(p, func() subscription.Subscription {
		atomic.AddInt32(&ran, 1)
		return subscription.Empty()
	})

	testutil.AssertEqual(t, sub.IsUnsubscribed(), true)
	time.Sleep(20 * time.Millisecond)
	testutil.AssertEqual(t, atomic.LoadInt32(&ran), int32(0))
}
