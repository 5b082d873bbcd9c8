package ops

import flux "github.com/mirelis/flux"

// ObserveOn is a transform creating a nested context from makeStrand
// and, for each upstream next/error/complete, deferring the
// corresponding downstream call onto the new strand. Intra-event
// ordering is preserved by the strand's own FIFO tie-break at equal
// deferral times. Grounded on chanx/debounce.go's single-goroutine-
// owns-timer idiom, generalized from "debounce the latest value" to
// "defer every value onto a dedicated strand".
func ObserveOn[V any](makeStrand flux.MakeStrand) flux.Transform[V, V] {
	return func(downstream flux.Sink[V]) flux.Sink[V] {
		return func(ctx flux.Context) flux.Observer[V] {
			nested := flux.New()
			ctx.Lifetime().InsertChild(nested)
			nestedCtx := flux.CopyContextWithMakeStrand(nested, makeStrand, ctx)
			d := downstream(nestedCtx)
			strand := nestedCtx.Strand()

			// Each deferred call runs on its own throwaway lifetime: its
			// next never reschedules, so the strand completes the task
			// right after call() runs. Binding the task to d.Lifetime would
			// have Observer.Complete stop the real downstream lifetime after
			// the first forwarded event.
			fire := func(call func()) {
				task := flux.MakeObserver[flux.Reschedule](flux.New(), func(flux.Reschedule) { call() }, nil, nil)
				flux.Defer(strand, task)
			}

			return flux.MakeDelegatingObserver(d.Lifetime, d, flux.PolicyPass,
				func(dd flux.Observer[V], v V) { fire(func() { dd.Next(v) }) },
				func(dd flux.Observer[V], err error) { fire(func() { dd.Error(err) }) },
				func(dd flux.Observer[V]) { fire(func() { dd.Complete() }) })
		}
	}
}
