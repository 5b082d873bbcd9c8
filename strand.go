package flux

import "time"

// Reschedule is the closure a strand hands to a deferred task's Next
// callback. Calling it with a new time requests another firing at that
// time; not calling it means the task is done, and the strand follows up
// with Complete. This is the only place a reschedule closure is exposed
// to user code — periodic scheduling (context.go's DeferPeriodic) is
// built entirely on top of it.
type Reschedule func(at time.Time)

// DeferredTask is the callback a strand invokes at or after a requested
// time: it is exactly an Observer[Reschedule]. Next fires on each
// activation; Error/Complete terminate the task directly (used by
// callers that need to end a deferred task outside the normal
// reschedule-or-not protocol, e.g. an upstream stream error). This
// reuses Observer[V]'s panic protection and Lifetime bookkeeping rather
// than inventing a parallel callback type.
type DeferredTask = Observer[Reschedule]

// Strand is where and when deferred callbacks run. DeferAt places a
// task on the strand to fire at or after t; a strand fires tasks in
// nondecreasing time order, FIFO at equal times.
type Strand interface {
	Lifetime() Subscription
	Now() time.Time
	DeferAt(t time.Time, task DeferredTask)
}

// immediateStrand is the synchronous, in-thread strand: DeferAt blocks
// the calling goroutine, sleeping via the Clock until each deadline,
// until the task signals completion. Grounded on rx.h's
// detail::immediate<Clock>.
type immediateStrand struct {
	lifetime Subscription
	clock    Clock
}

// NewImmediateStrand returns the immediate strand: DeferAt is
// synchronous and blocking, suitable for benchmarks and single-threaded
// pipelines. It is the default strand a Context uses when no make-strand
// override is supplied.
func NewImmediateStrand(lifetime Subscription, clock Clock) Strand {
	if clock == nil {
		clock = WallClock{}
	}
	return immediateStrand{lifetime: lifetime, clock: clock}
}

func (s immediateStrand) Lifetime() Subscription { return s.lifetime }

func (s immediateStrand) Now() time.Time { return s.clock.Now() }

func (s immediateStrand) DeferAt(t time.Time, task DeferredTask) {
	for {
		if s.lifetime.IsStopped() {
			return
		}
		s.clock.SleepUntil(t)
		if s.lifetime.IsStopped() {
			return
		}

		var next time.Time
		fired := false
		task.Next(func(at time.Time) {
			next = at
			fired = true
		})
		if !fired {
			task.Complete()
			return
		}
		t = next
	}
}
