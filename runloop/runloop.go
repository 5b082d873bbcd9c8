// Package runloop provides the queued and per-thread Strand flavors:
// a mutex+condvar priority queue drained by a dedicated goroutine
// (RunLoopStrand), a convenience wrapper that owns that goroutine
// (NewThreadStrand), and a make-strand policy that multiplexes many
// child lifetimes onto one underlying strand (SharedMakeStrand).
package runloop

import (
	"container/heap"
	"sync"
	"time"

	flux "github.com/mirelis/flux"
)

type taskItem struct {
	at      time.Time
	ordinal uint64
	task    flux.DeferredTask
}

// taskHeap orders by (time asc, ordinal asc) — nondecreasing deadline,
// FIFO tie-break — generalizing stream.go's indexedResultHeap from
// "order by input index" to "order by (deadline, insertion ordinal)".
type taskHeap []taskItem

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].ordinal < h[j].ordinal
	}
	return h[i].at.Before(h[j].at)
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(taskItem)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// RunLoopStrand is a mutex-protected priority queue of deferred tasks.
// DeferAt enqueues and returns immediately; Run drains the queue on
// whichever goroutine calls it, until the strand's lifetime stops.
// Grounded on pool.go's worker-goroutine-with-panic-recovery loop,
// narrowed from "drain a shared task channel" to "drain one priority
// queue", and on stream.go's indexedResultHeap for the ordering
// structure.
type RunLoopStrand struct {
	lifetime flux.Subscription
	clock    flux.Clock

	mu      sync.Mutex
	cond    *sync.Cond
	nextOrd uint64
	q       taskHeap
}

// NewRunLoopStrand builds a run-loop strand rooted at lifetime. Run
// must be called (typically from its own goroutine, see
// NewThreadStrand) for deferred tasks to actually fire.
func NewRunLoopStrand(lifetime flux.Subscription, clock flux.Clock) *RunLoopStrand {
	if clock == nil {
		clock = flux.WallClock{}
	}
	s := &RunLoopStrand{lifetime: lifetime, clock: clock}
	s.cond = sync.NewCond(&s.mu)
	lifetime.InsertStopper(func() {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	return s
}

func (s *RunLoopStrand) Lifetime() flux.Subscription { return s.lifetime }
func (s *RunLoopStrand) Now() time.Time              { return s.clock.Now() }

func (s *RunLoopStrand) DeferAt(t time.Time, task flux.DeferredTask) {
	s.mu.Lock()
	ord := s.nextOrd
	s.nextOrd++
	heap.Push(&s.q, taskItem{at: t, ordinal: ord, task: task})
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Run drains the queue on the calling goroutine: waits until the
// lifetime stops or a task is due, pops the earliest, invokes its Next
// with a reschedule closure, re-pushes on reschedule or invokes
// Complete otherwise, and loops. Exactly one goroutine should call Run
// for a given strand.
//
// Waiting for a future due time does not block the drainer in an
// uninterruptible sleep: a timer goroutine (grounded on chanx/
// debounce.go's goroutine-owns-a-timer idiom) sleeps until due and
// broadcasts, while the drainer itself parks on the condition variable.
// DeferAt's own Broadcast, fired whenever a new task is enqueued, wakes
// the drainer the same way, so a newly-pushed earlier deadline is
// re-checked immediately instead of waiting out a stale sleep.
func (s *RunLoopStrand) Run() {
	for {
		s.mu.Lock()
		for {
			if s.lifetime.IsStopped() {
				s.mu.Unlock()
				return
			}
			if len(s.q) == 0 {
				s.cond.Wait()
				continue
			}
			due := s.q[0].at
			if !due.After(s.clock.Now()) {
				break
			}
			go func() {
				s.clock.SleepUntil(due)
				s.mu.Lock()
				s.cond.Broadcast()
				s.mu.Unlock()
			}()
			s.cond.Wait()
		}
		item := heap.Pop(&s.q).(taskItem)
		s.mu.Unlock()

		var next time.Time
		fired := false
		item.task.Next(func(at time.Time) {
			next = at
			fired = true
		})
		if !fired {
			item.task.Complete()
			continue
		}
		s.mu.Lock()
		ord := s.nextOrd
		s.nextOrd++
		heap.Push(&s.q, taskItem{at: next, ordinal: ord, task: item.task})
		s.mu.Unlock()
		s.cond.Broadcast()
	}
}
