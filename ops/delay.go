package ops

import (
	"time"

	flux "github.com/mirelis/flux"
)

// Delay is like ObserveOn but schedules each deferred call d after the
// strand's current time rather than as soon as possible, preserving
// the relative spacing of events scheduled from a single calling
// goroutine. Grounded on the same chanx/debounce.go timer idiom as
// ObserveOn, with the defer target moved from "now" to "now + d".
func Delay[V any](makeStrand flux.MakeStrand, d time.Duration) flux.Transform[V, V] {
	return func(downstream flux.Sink[V]) flux.Sink[V] {
		return func(ctx flux.Context) flux.Observer[V] {
			nested := flux.New()
			ctx.Lifetime().InsertChild(nested)
			nestedCtx := flux.CopyContextWithMakeStrand(nested, makeStrand, ctx)
			down := downstream(nestedCtx)
			strand := nestedCtx.Strand()

			// Each deferred call runs on its own throwaway lifetime, not
			// down.Lifetime — see ObserveOn for why reusing the real
			// downstream lifetime here would stop it after the first
			// forwarded event.
			fire := func(call func()) {
				task := flux.MakeObserver[flux.Reschedule](flux.New(), func(flux.Reschedule) { call() }, nil, nil)
				flux.DeferAfter(strand, d, task)
			}

			return flux.MakeDelegatingObserver(down.Lifetime, down, flux.PolicyPass,
				func(dd flux.Observer[V], v V) { fire(func() { dd.Next(v) }) },
				func(dd flux.Observer[V], err error) { fire(func() { dd.Error(err) }) },
				func(dd flux.Observer[V]) { fire(func() { dd.Complete() }) })
		}
	}
}
