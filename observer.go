package flux

import (
	"fmt"
	"runtime"
)

// Observer is a value sink bound to a lifetime. Next may fire zero or
// more times while the lifetime is not stopped; at most one of Error or
// Complete fires, exactly once on natural termination, and implicitly
// stops the lifetime. After termination, further calls are discarded.
//
// The error channel is always Go's error interface. A generalized
// error type is the kind of genericity idiomatic Go avoids — a plain
// error carried through every stage, the same way the teacher's own
// APIs never parameterize over their failure type.
//
// Construct one with MakeObserver (direct) or MakeDelegatingObserver
// (chains to a downstream Observer without the stage capturing its own
// callbacks) — mirroring rx.h's observer<Next,Error,Complete> and
// observer<Delegatee,Next,Error,Complete> specializations.
type Observer[V any] struct {
	Lifetime Subscription
	next     func(V)
	error    func(error)
	complete func()
}

// PanicError is what a panicking next callback turns into on its way
// through the Error path: the Observer Contract (spec.md §4.2 rule 4)
// requires next to be protected, never error or complete, so this is
// the one shape a caught panic can take in this library — there is no
// second recover site anywhere else that could produce one.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack captured at the point of the panic,
	// for diagnosing what the next callback was doing when it panicked.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns nil: a PanicError is the root cause, not a wrapper.
func (e *PanicError) Unwrap() error { return nil }

func newPanicError(v any) *PanicError {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{Value: v, Stack: string(buf[:n])}
}

// Next delivers a value downstream. Per the Observer Contract it is a
// no-op once the lifetime has stopped, and any panic raised by the user
// callback is caught and routed through Error — never allowed to
// propagate out of Next.
func (o Observer[V]) Next(v V) {
	if o.Lifetime.IsStopped() {
		return
	}
	var caught error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok {
					caught = err
				} else {
					// Still inside the deferred call, so the panicking
					// frames are on the stack newPanicError captures.
					caught = newPanicError(r)
				}
			}
		}()
		o.next(v)
	}()
	if caught != nil {
		o.Error(caught)
	}
}

// Error terminates the stream with err and stops the lifetime. Per the
// Observer Contract, a panic raised here is a contract violation and is
// allowed to crash the process rather than being caught.
//
// The user callback runs before Stop(): a delegating observer's default
// forwarding calls downstream.Error(err) directly, and downstream often
// shares this exact lifetime (MakeDelegatingObserver(d.Lifetime, d, ...)
// is the common shape in ops/). Stopping first would make that shared
// lifetime already-stopped by the time the forwarded call checks it,
// silently swallowing the forward. Calling error(err) first still stops
// the lifetime by the time Error returns, and Stop is idempotent, so a
// nested Stop triggered by the callback itself is a harmless no-op here.
func (o Observer[V]) Error(err error) {
	if o.Lifetime.IsStopped() {
		return
	}
	o.error(err)
	o.Lifetime.Stop()
}

// Complete terminates the stream normally and stops the lifetime. Like
// Error, a panic here is a contract violation and is not caught, and the
// callback runs before Stop() for the same reason as Error.
func (o Observer[V]) Complete() {
	if o.Lifetime.IsStopped() {
		return
	}
	o.complete()
	o.Lifetime.Stop()
}

// MakeObserver builds a direct observer. Any of next/errFn/onComplete
// may be nil, in which case the make-observer defaults apply: Next
// no-ops, Error aborts the process (stream errors must be handled
// explicitly), Complete no-ops.
func MakeObserver[V any](lifetime Subscription, next func(V), errFn func(error), onComplete func()) Observer[V] {
	if next == nil {
		next = func(V) {}
	}
	if errFn == nil {
		errFn = func(e error) { abort("unhandled stream error: %v", e) }
	}
	if onComplete == nil {
		onComplete = func() {}
	}
	return Observer[V]{Lifetime: lifetime, next: next, error: errFn, complete: onComplete}
}

// DelegatePolicy selects the default behavior of a delegating observer's
// unspecified callbacks, mirroring rx.h's pass/skip/ignore policy
// structs.
type DelegatePolicy int

const (
	// PolicyPass forwards error/complete to the downstream observer. This
	// is the default used by stateless stages like filter and map.
	PolicyPass DelegatePolicy = iota
	// PolicySkip swallows error/complete instead of forwarding them.
	PolicySkip
	// PolicyIgnore swallows values (Next is a no-op) but still forwards
	// error/complete.
	PolicyIgnore
)

// MakeDelegatingObserver builds an observer that forwards error and
// complete to downstream by default, per policy, for whichever of
// errFn/onComplete is nil. next must be given unless policy is
// PolicyIgnore (then a nil next swallows values); a nil next under any
// other policy aborts, since V and DV may differ. A delegating observer lets stateless stages (filter, map) chain
// without capturing the downstream observer in three separate closures.
func MakeDelegatingObserver[V, DV any](
	lifetime Subscription,
	downstream Observer[DV],
	policy DelegatePolicy,
	next func(Observer[DV], V),
	errFn func(Observer[DV], error),
	onComplete func(Observer[DV]),
) Observer[V] {
	if next == nil {
		if policy == PolicyIgnore {
			next = func(Observer[DV], V) {}
		} else {
			abort("MakeDelegatingObserver requires an explicit next unless PolicyIgnore is set")
		}
	}
	if errFn == nil {
		if policy == PolicySkip {
			errFn = func(Observer[DV], error) {}
		} else {
			errFn = func(d Observer[DV], e error) { d.Error(e) }
		}
	}
	if onComplete == nil {
		if policy == PolicySkip {
			onComplete = func(Observer[DV]) {}
		} else {
			onComplete = func(d Observer[DV]) { d.Complete() }
		}
	}
	return Observer[V]{
		Lifetime: lifetime,
		next:     func(v V) { next(downstream, v) },
		error:    func(e error) { errFn(downstream, e) },
		complete: func() { onComplete(downstream) },
	}
}
