package ops

import flux "github.com/mirelis/flux"

// Filter is a transform forwarding v downstream iff pred(v). Grounded
// on chanx/transform.go's channel Filter and stream.go's Stream.Filter,
// adapted from a pull stage to a push-sink delegating observer.
func Filter[V any](pred func(V) bool) flux.Transform[V, V] {
	return func(downstream flux.Sink[V]) flux.Sink[V] {
		return func(ctx flux.Context) flux.Observer[V] {
			d := downstream(ctx)
			return flux.MakeDelegatingObserver(d.Lifetime, d, flux.PolicyPass,
				func(dd flux.Observer[V], v V) {
					if pred(v) {
						dd.Next(v)
					}
				}, nil, nil)
		}
	}
}

// Map is a transform forwarding f(v) downstream. Grounded on
// chanx/transform.go's channel Map and stream.go's Stream.Map[A,B].
func Map[V, V2 any](f func(V) V2) flux.Transform[V, V2] {
	return func(downstream flux.Sink[V2]) flux.Sink[V] {
		return func(ctx flux.Context) flux.Observer[V] {
			d := downstream(ctx)
			return flux.MakeDelegatingObserver(d.Lifetime, d, flux.PolicyPass,
				func(dd flux.Observer[V2], v V) {
					dd.Next(f(v))
				}, nil, nil)
		}
	}
}
