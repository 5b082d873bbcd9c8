package ops

import flux "github.com/mirelis/flux"

// Finalize is a transform attaching f as a finalizer on the downstream
// subscription, run at Stop time (LIFO with any other stoppers already
// installed on the same lifetime). Grounded on designcontext.h's
// subscription::insert(stopper).
func Finalize[V any](f func()) flux.Transform[V, V] {
	return func(downstream flux.Sink[V]) flux.Sink[V] {
		return func(ctx flux.Context) flux.Observer[V] {
			d := downstream(ctx)
			d.Lifetime.InsertStopper(f)
			return flux.MakeDelegatingObserver(d.Lifetime, d, flux.PolicyPass,
				func(dd flux.Observer[V], v V) { dd.Next(v) }, nil, nil)
		}
	}
}
