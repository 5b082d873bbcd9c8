package flux

import "time"

// MakeStrand creates a Strand rooted at lifetime. Contexts carry one of
// these so stages that need a sibling or child strand of the same kind
// (observe_on, delay, merge) can create one without knowing which
// concrete Strand implementation is in play.
type MakeStrand func(lifetime Subscription) Strand

// ImmediateMakeStrand is the default MakeStrand: every strand it
// produces is a synchronous immediate strand sharing clock.
func ImmediateMakeStrand(clock Clock) MakeStrand {
	return func(lifetime Subscription) Strand {
		return NewImmediateStrand(lifetime, clock)
	}
}

// Context pairs a Strand with an optional user payload (scoped state
// with the same lifetime rules as any other State) and a MakeStrand for
// creating sibling/child strands of the same kind. Payload is nil when
// the context carries none.
type Context struct {
	strand  Strand
	make    MakeStrand
	Payload any
}

// NewContext builds a root context over lifetime, using make to produce
// its strand. If make is nil, ImmediateMakeStrand(WallClock{}) is used.
func NewContext(lifetime Subscription, make MakeStrand, payload any) Context {
	if make == nil {
		make = ImmediateMakeStrand(WallClock{})
	}
	return Context{strand: make(lifetime), make: make, Payload: payload}
}

// Lifetime returns the context's current strand's lifetime.
func (c Context) Lifetime() Subscription { return c.strand.Lifetime() }

// Strand returns the context's current strand.
func (c Context) Strand() Strand { return c.strand }

// MakeStrand returns the context's make-strand policy.
func (c Context) MakeStrand() MakeStrand { return c.make }

// CopyContext rebinds c's strand to a new lifetime while keeping c's
// make-strand, producing a fresh strand instance from it (or reusing a
// shared one, per the make-strand's own policy). Mirrors
// designcontext.h's context copy-to-new-lifetime semantics.
func CopyContext(lifetime Subscription, c Context) Context {
	return Context{strand: c.make(lifetime), make: c.make, Payload: c.Payload}
}

// CopyContextWithMakeStrand is CopyContext but also switches the
// make-strand — used by ObserveOn, Delay, and Merge to route a stage
// onto a different strand kind (e.g. a shared make-strand for merge).
func CopyContextWithMakeStrand(lifetime Subscription, newMake MakeStrand, c Context) Context {
	return Context{strand: newMake(lifetime), make: newMake, Payload: c.Payload}
}

// Defer is DeferAt at the strand's current time: fire as soon as
// possible.
func Defer(s Strand, task DeferredTask) {
	DeferAt(s, s.Now(), task)
}

// DeferAt places task on s to fire at or after t.
func DeferAt(s Strand, t time.Time, task DeferredTask) {
	s.DeferAt(t, task)
}

// DeferAfter places task on s to fire after d has elapsed from s's
// current time.
func DeferAfter(s Strand, d time.Duration, task DeferredTask) {
	s.DeferAt(s.Now().Add(d), task)
}

// DeferPeriodic fires next(i) at initial, initial+period,
// initial+2*period, ... until lifetime stops or the observer's Error or
// Complete is invoked directly. next receives a monotonically
// increasing 64-bit counter starting at 0. The target time for each
// firing is tracked internally (initial + i*period) to avoid drift from
// callback latency: each reschedule requests exactly target+period,
// never now()+period.
func DeferPeriodic(s Strand, lifetime Subscription, initial time.Time, period time.Duration, next func(i uint64)) {
	var i uint64
	target := initial
	task := MakeObserver[Reschedule](lifetime, func(reschedule Reschedule) {
		next(i)
		i++
		target = target.Add(period)
		reschedule(target)
	}, nil, nil)
	s.DeferAt(target, task)
}
