package ops

import flux "github.com/mirelis/flux"

// LastOrDefault is a transform that stores each incoming value in
// scoped state; on upstream Complete it emits the stored value (def if
// nothing was received) and then completes. Grounded on stream_ops.go's
// Scan running-accumulator pattern, narrowed from "fold with every
// intermediate result" to "keep only the last".
func LastOrDefault[V any](def V) flux.Transform[V, V] {
	return func(downstream flux.Sink[V]) flux.Sink[V] {
		return func(ctx flux.Context) flux.Observer[V] {
			d := downstream(ctx)
			state, err := flux.MakeState(d.Lifetime, func() V { return def })
			if err != nil {
				d.Error(err)
				return flux.MakeObserver[V](d.Lifetime, nil, nil, nil)
			}
			return flux.MakeDelegatingObserver(d.Lifetime, d, flux.PolicyPass,
				func(dd flux.Observer[V], v V) {
					*state.Get() = v
				},
				nil,
				func(dd flux.Observer[V]) {
					dd.Next(*state.Get())
					dd.Complete()
				})
		}
	}
}
