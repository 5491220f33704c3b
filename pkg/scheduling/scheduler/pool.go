package scheduler

import (
	"sync"
	"time"

	"github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/subscription"
)

// PoolConfig holds configuration options for a pool scheduler.
type PoolConfig struct {
	// Workers is the number of worker goroutines. Defaults to 4.
	Workers int

	// QueueSize is the capacity of the dispatch queue. Defaults to 64.
	QueueSize int
}

// Pool runs actions on a fixed set of worker goroutines. Delayed actions
// wait on a timer goroutine and are handed to the pool at their due time,
// so a sleeping action never occupies a worker.
type Pool struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup

	stopped chan struct{}
}

// NewPool creates a pool scheduler with the given worker count and queue
// size, applying defaults for non-positive values.
func NewPool(workers, queueSize int) *Pool {
	return NewPoolWithConfig(PoolConfig{Workers: workers, QueueSize: queueSize})
}

// NewPoolWithConfig creates a pool scheduler with custom configuration.
func NewPoolWithConfig(cfg PoolConfig) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}

	p := &Pool{
		tasks:   make(chan func(), queueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	go func() {
		p.wg.Wait()
		close(p.stopped)
	}()
	return p
}

// Now returns the wall-clock time.
func (p *Pool) Now() time.Time {
	return time.Now()
}

// ScheduleAbsolute dispatches action to a worker once the due time
// arrives. Work handed to a stopped pool is dropped and the empty
// subscription is returned; Err tells the two apart.
func (p *Pool) ScheduleAbsolute(due time.Time, action Action) subscription.Subscription {
	select {
	case <-p.done:
		return subscription.Empty()
	default:
	}

	d := newDiscardableAction(action)
	stop := make(chan struct{})

	if !due.IsZero() && due.After(time.Now()) {
		go func() {
			if waitUntil(time.Now, due, stop) {
				p.submit(d.run)
			}
		}()
	} else {
		p.submit(d.run)
	}

	return subscription.NewComposite(
		subscription.New(func() { close(stop) }),
		d.Subscription(),
	)
}

// submit hands run to the pool, falling back to a goroutine when the
// queue is full so a scheduling call never blocks the caller.
func (p *Pool) submit(run func()) {
	select {
	case p.tasks <- run:
	case <-p.done:
	default:
		go func() {
			select {
			case p.tasks <- run:
			case <-p.done:
			}
		}()
	}
}

// Shutdown stops the pool. Queued actions are drained before the workers
// exit; the returned channel closes when shutdown is complete.
func (p *Pool) Shutdown() <-chan struct{} {
	p.once.Do(func() { close(p.done) })
	return p.stopped
}

// Err reports why the pool no longer accepts work: nil while running,
// errors.ErrSchedulerStopped after Shutdown.
func (p *Pool) Err() error {
	select {
	case <-p.done:
		return errors.ErrSchedulerStopped
	default:
		return nil
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case run := <-p.tasks:
			dispatch(run)
		case <-p.done:
			// Drain what is already queued, then exit.
			for {
				select {
				case run := <-p.tasks:
					dispatch(run)
				default:
					return
				}
			}
		}
	}
}

// dispatch contains an action failure so one panicking action does not
// take a worker down with it.
func dispatch(run func()) {
	defer func() {
		_ = recover()
	}()
	run()
}
