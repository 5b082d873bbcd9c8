package flux

// The five pipeline stage kinds and the composition functions below
// replace rx_pipe_operator.h's ten operator| overloads: Go has no
// operator overloading and a method cannot introduce a new type
// parameter (a generic Compose method on Source[V] could never name a
// V2), so each composition rule is its own free generic function
// instead of a shared operator symbol.

// Runnable activates a pipeline against a context, returning the
// subscription representing the running activation.
type Runnable func(ctx Context) Subscription

// Sink turns a context into the observer that receives this stage's
// values.
type Sink[V any] func(ctx Context) Observer[V]

// Source, given a downstream sink, returns the Runnable that starts
// emitting into it.
type Source[V any] func(sink Sink[V]) Runnable

// Transform lifts a sink expecting V2 into a sink expecting V: it is
// source-side value adaptation. filter, map, last_or_default, and
// finalize all have this shape.
type Transform[V, V2 any] func(Sink[V2]) Sink[V]

// SourceTransform wraps a Source[V] into a Source[V2], with the
// opportunity to handle context set-up of its own. take keeps V2
// equal to V; merge sets V to Source[V2]
// (an upstream of inner sources) and V2 to the inner value type.
type SourceTransform[V, V2 any] func(Source[V]) Source[V2]

// SinkTransform fuses a source-side wrap with a terminal sink: given a
// Source[V], it produces the Runnable that starts the source bound to
// that sink, skipping the intermediate Source value entirely.
type SinkTransform[V any] func(Source[V]) Runnable

// PipeSource implements Source | Transform -> Source: s's values, of
// type V, are adapted to V2 by wrapping the eventual downstream sink.
func PipeSource[V, V2 any](s Source[V], t Transform[V, V2]) Source[V2] {
	return func(sink Sink[V2]) Runnable {
		return s(t(sink))
	}
}

// StartSinkTransform implements Source | SinkTransform -> Runnable.
func StartSinkTransform[V any](s Source[V], u SinkTransform[V]) Runnable {
	return u(s)
}

// Start implements Source | Sink -> Runnable.
func Start[V any](s Source[V], k Sink[V]) Runnable {
	return s(k)
}

// ChainTransform implements Transform | Transform -> Transform.
func ChainTransform[V, V2, V3 any](t1 Transform[V, V2], t2 Transform[V2, V3]) Transform[V, V3] {
	return func(sink Sink[V3]) Sink[V] {
		return t1(t2(sink))
	}
}

// Bind implements Transform | Sink -> Sink.
func Bind[V, V2 any](t Transform[V, V2], k Sink[V2]) Sink[V] {
	return t(k)
}

// ChainTransformAdapt implements Transform | SourceTransform. The
// table names the result SinkTransform, but nothing in this rule
// supplies a terminal sink — t only adapts values, a only wraps a
// Source — so the natural Go typing of the fused result is still a
// SourceTransform (a Source[V] in, a Source[V3] out); it composes with
// AdaptSink below exactly like any other SourceTransform would.
func ChainTransformAdapt[V, V2, V3 any](t Transform[V, V2], a SourceTransform[V2, V3]) SourceTransform[V, V3] {
	return func(s Source[V]) Source[V3] {
		return a(PipeSource(s, t))
	}
}

// ChainAdapt implements SourceTransform | SourceTransform -> SourceTransform.
func ChainAdapt[V, V2, V3 any](a1 SourceTransform[V, V2], a2 SourceTransform[V2, V3]) SourceTransform[V, V3] {
	return func(s Source[V]) Source[V3] {
		return a2(a1(s))
	}
}

// AdaptTransform implements SourceTransform | Transform -> SourceTransform.
func AdaptTransform[V, V2, V3 any](a SourceTransform[V, V2], t Transform[V2, V3]) SourceTransform[V, V3] {
	return func(s Source[V]) Source[V3] {
		return PipeSource(a(s), t)
	}
}

// AdaptSink implements SourceTransform | Sink -> SinkTransform.
func AdaptSink[V, V2 any](a SourceTransform[V, V2], k Sink[V2]) SinkTransform[V] {
	return func(s Source[V]) Runnable {
		return a(s)(k)
	}
}

// RunPipeline implements Runnable | Context -> Subscription: it starts
// the pipeline. Call Subscription.Join afterward to wait for it to
// stop.
func RunPipeline(r Runnable, ctx Context) Subscription {
	return r(ctx)
}

// AsAnySource type-erases a Source[V] into a Source[any], boxing every
// value. Mirrors the unary as_interface conversion for dynamic
// composition across module boundaries — the concretely typed
// Source[V] remains strongly preferred for inner loops.
func AsAnySource[V any](s Source[V]) Source[any] {
	lift := Transform[V, any](func(downstream Sink[any]) Sink[V] {
		return func(ctx Context) Observer[V] {
			d := downstream(ctx)
			return MakeObserver[V](d.Lifetime, func(v V) { d.Next(v) }, d.Error, d.Complete)
		}
	})
	return PipeSource(s, lift)
}

// AsAnySink type-erases a Sink[V] into a Sink[any]; values handed to it
// that are not of type V are a contract violation and abort the
// process, mirroring a failed dynamic downcast.
func AsAnySink[V any](k Sink[V]) Sink[any] {
	return func(ctx Context) Observer[any] {
		d := k(ctx)
		return MakeObserver[any](d.Lifetime, func(v any) {
			tv, ok := v.(V)
			if !ok {
				abort("AsAnySink: value of type %T does not match expected type", v)
			}
			d.Next(tv)
		}, d.Error, d.Complete)
	}
}
