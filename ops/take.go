package ops

import flux "github.com/mirelis/flux"

// Take is a source-transform forwarding the first n values and then
// invoking Complete. n of 0 completes on the first subscription without
// ever subscribing upstream. Grounded on stream.go's Stream.Take,
// adapted from a pull-count to a push-count that completes the
// downstream sink early (which in turn stops the shared lifetime,
// causing any well-behaved upstream source's own is_stopped loop check
// to end emission).
func Take[V any](n int) flux.SourceTransform[V, V] {
	return func(s flux.Source[V]) flux.Source[V] {
		return func(sink flux.Sink[V]) flux.Runnable {
			return func(ctx flux.Context) flux.Subscription {
				if n <= 0 {
					o := sink(ctx)
					o.Complete()
					return o.Lifetime
				}

				count := 0
				wrapped := flux.Sink[V](func(innerCtx flux.Context) flux.Observer[V] {
					d := sink(innerCtx)
					return flux.MakeDelegatingObserver(d.Lifetime, d, flux.PolicyPass,
						func(dd flux.Observer[V], v V) {
							count++
							dd.Next(v)
							if count >= n {
								dd.Complete()
							}
						}, nil, nil)
				})
				return s(wrapped)(ctx)
			}
		}
	}
}
