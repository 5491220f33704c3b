package asynclock

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/vnykmshr/rxflow/pkg/common/errors"
)

func TestWaitRunsInline(t *testing.T) {
	l := New()

	ran := false
	l.Wait(func() { ran = true })
	if !ran {
		t.Error("expected action to run inline on an idle lock")
	}
}

func TestReentrantWaitIsQueued(t *testing.T) {
	l := New()

	var order []int
	l.Wait(func() {
		order = append(order, 1)
		// Enqueued, not run inline: the outer Wait is still draining.
		l.Wait(func() { order = append(order, 3) })
		order = append(order, 2)
	})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("got order %v, want [1 2 3]", order)
	}
}

func TestDisposeDropsPending(t *testing.T) {
	l := New()

	var ran int32
	l.Wait(func() {
		l.Wait(func() { atomic.AddInt32(&ran, 1) })
		l.Dispose()
	})

	if atomic.LoadInt32(&ran) != 0 {
		t.Error("expected queued action to be dropped after Dispose")
	}

	l.Wait(func() { atomic.AddInt32(&ran, 1) })
	if atomic.LoadInt32(&ran) != 0 {
		t.Error("expected Wait after Dispose to be a no-op")
	}
}

func TestErrReportsFault(t *testing.T) {
	l := New()

	if err := l.Err(); err != nil {
		t.Errorf("got %v, want nil on a live lock", err)
	}

	l.Dispose()
	if err := l.Err(); err != errors.ErrDisposed {
		t.Errorf("got %v, want ErrDisposed", err)
	}
}

func TestMutualExclusion(t *testing.T) {
	l := New()

	const goroutines = 16
	const perGoroutine = 200

	var inside int32
	var total int32
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				l.Wait(func() {
					if atomic.AddInt32(&inside, 1) != 1 {
						t.Error("two actions ran concurrently")
					}
					atomic.AddInt32(&total, 1)
					atomic.AddInt32(&inside, -1)
				})
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&total); got != goroutines*perGoroutine {
		t.Errorf("got %d actions, want %d", got, goroutines*perGoroutine)
	}
}
