// Package ops provides the reference operator set: sources, transforms,
// and sinks built on top of the flux pipeline algebra.
package ops

import flux "github.com/mirelis/flux"

// Ints is a source emitting the integers first..=last in order,
// checking is_stopped between each emission, then completing. If
// first > last it emits nothing and completes immediately. Grounded on
// observables/rx_ints.h's ints observable and generalized from the
// teacher's FromSlice/FromFunc source-construction idiom in stream.go.
func Ints(first, last int) flux.Source[int] {
	return func(sink flux.Sink[int]) flux.Runnable {
		return func(ctx flux.Context) flux.Subscription {
			o := sink(ctx)
			for i := first; i <= last && !o.Lifetime.IsStopped(); i++ {
				o.Next(i)
				if i == last {
					break
				}
			}
			o.Complete()
			return o.Lifetime
		}
	}
}

// FromSlice is a source emitting every element of vs in order, then
// completing — the push-based analogue of stream.go's FromSlice pull
// source, supplying a source for arbitrary element types the way Ints
// does for a contiguous integer range.
func FromSlice[V any](vs []V) flux.Source[V] {
	return func(sink flux.Sink[V]) flux.Runnable {
		return func(ctx flux.Context) flux.Subscription {
			o := sink(ctx)
			for _, v := range vs {
				if o.Lifetime.IsStopped() {
					break
				}
				o.Next(v)
			}
			o.Complete()
			return o.Lifetime
		}
	}
}
