package scheduler

import (
	"container/heap"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/rxflow/pkg/common/cell"
)

// timedAction is a queued unit of work keyed by (due, seq). seq is a
// per-queue insertion counter: among actions with equal due times the one
// enqueued first runs first, which keeps execution order deterministic.
type timedAction struct {
	due time.Time
	seq int64
	run func()
}

// timedHeap implements heap.Interface ordered by (due, seq).
type timedHeap []timedAction

func (h timedHeap) Len() int { return len(h) }

func (h timedHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}

func (h timedHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timedHeap) Push(x any) { *h = append(*h, x.(timedAction)) }

func (h *timedHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = timedAction{}
	*h = old[:n-1]
	return item
}

// TimedQueue is a priority queue of actions keyed by due time, with FIFO
// order among equal due times. All operations are linearizable; the queue
// never blocks and never invokes an action itself.
type TimedQueue struct {
	seq  atomic.Int64
	heap *cell.Cell[timedHeap]
}

// NewTimedQueue creates an empty queue.
func NewTimedQueue() *TimedQueue {
	return &TimedQueue{heap: cell.New(timedHeap{})}
}

// Enqueue inserts run with the given due time.
func (q *TimedQueue) Enqueue(due time.Time, run func()) {
	item := timedAction{due: due, seq: q.seq.Add(1), run: run}
	cell.Synchronize(q.heap, func(h *timedHeap) struct{} {
		heap.Push(h, item)
		return struct{}{}
	})
}

// Peek returns the earliest due time without removing the action.
// ok is false when the queue is empty.
func (q *TimedQueue) Peek() (due time.Time, ok bool) {
	due = cell.Synchronize(q.heap, func(h *timedHeap) time.Time {
		if len(*h) == 0 {
			return time.Time{}
		}
		ok = true
		return (*h)[0].due
	})
	return due, ok
}

// Dequeue removes and returns the earliest action. ok is false when the
// queue is empty.
func (q *TimedQueue) Dequeue() (run func(), due time.Time, ok bool) {
	item := cell.Synchronize(q.heap, func(h *timedHeap) timedAction {
		if len(*h) == 0 {
			return timedAction{}
		}
		ok = true
		return heap.Pop(h).(timedAction)
	})
	if !ok {
		return nil, time.Time{}, false
	}
	return item.run, item.due, true
}

// Len returns the number of queued actions.
func (q *TimedQueue) Len() int {
	return cell.Synchronize(q.heap, func(h *timedHeap) int {
		return len(*h)
	})
}
