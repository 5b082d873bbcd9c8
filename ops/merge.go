package ops

import (
	"fmt"
	"sync"

	flux "github.com/mirelis/flux"
	"github.com/mirelis/flux/runloop"
)

// MergeError attributes a Merge failure to the branch that produced
// it: "outer" for the source-of-sources itself, "inner" for one of the
// subscribed inner sources. Grounded on task_error.go's TaskError,
// narrowed from "which named task failed" to "which merge branch
// failed" since Merge is the only stage in this package that produces
// attributed errors.
type MergeError struct {
	Branch string
	Err    error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge: %s branch failed: %v", e.Branch, e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }

// Merge is a source-transform: given an upstream whose emissions are
// themselves sources, it subscribes to each inner source as it arrives
// and forwards every value to the single downstream sink. makeStrand is
// built into exactly one underlying strand and wrapped in a sharing
// policy (runloop.SharedMakeStrand) internally, so the outer source and
// every inner source all multiplex onto that one strand regardless of
// what the caller passed in — mirroring rx.h's merge building its own
// `sharedmakestrand` once, rather than trusting the caller to have
// pre-shared it. Without this, a run-loop- or new-thread-backed
// makeStrand would hand the outer and every inner subscription an
// independent strand instance, racing unsynchronized calls into
// downstream.
//
// A pending set tracks the outer subscription plus one entry per active
// inner subscription; downstream Complete fires once the set empties.
// If the outer and an inner source error simultaneously, the first to
// report wins (a sync.Once guard, grounded on race.go's first-wins
// pattern) and the loser's error is discarded. Cancellation needs no
// special-casing here: both the outer and every inner subscription are
// inserted as children of the downstream lifetime, so stopping it
// already cascades through Subscription's own child-stop semantics.
// Grounded on chanx/merge.go's fan-in-with-sync.WaitGroup idiom,
// generalized from flat channels to a dynamic set of inner
// Subscriptions held in scoped state.
func Merge[V any](makeStrand flux.MakeStrand) flux.SourceTransform[flux.Source[V], V] {
	return func(outer flux.Source[flux.Source[V]]) flux.Source[V] {
		return func(sink flux.Sink[V]) flux.Runnable {
			return func(ctx flux.Context) flux.Subscription {
				d := sink(ctx)
				underlying := makeStrand(d.Lifetime)
				sharedMake := runloop.SharedMakeStrand(underlying)
				sharedCtx := flux.CopyContextWithMakeStrand(d.Lifetime, sharedMake, ctx)

				var mu sync.Mutex
				var once sync.Once
				pending := map[flux.Subscription]struct{}{}

				reportError := func(branch string, err error) {
					once.Do(func() { d.Error(&MergeError{Branch: branch, Err: err}) })
				}

				remove := func(s flux.Subscription) {
					mu.Lock()
					delete(pending, s)
					empty := len(pending) == 0
					mu.Unlock()
					if empty {
						d.Complete()
					}
				}

				outerLifetime := flux.New()
				d.Lifetime.InsertChild(outerLifetime)
				mu.Lock()
				pending[outerLifetime] = struct{}{}
				mu.Unlock()

				outerSink := flux.Sink[flux.Source[V]](func(flux.Context) flux.Observer[flux.Source[V]] {
					return flux.MakeObserver[flux.Source[V]](outerLifetime,
						func(inner flux.Source[V]) {
							innerLifetime := flux.New()
							d.Lifetime.InsertChild(innerLifetime)
							mu.Lock()
							pending[innerLifetime] = struct{}{}
							mu.Unlock()

							innerSink := flux.Sink[V](func(flux.Context) flux.Observer[V] {
								return flux.MakeObserver[V](innerLifetime,
									func(v V) { d.Next(v) },
									func(err error) { reportError("inner", err) },
									func() { remove(innerLifetime) })
							})
							flux.RunPipeline(inner(innerSink), flux.CopyContext(innerLifetime, sharedCtx))
						},
						func(err error) { reportError("outer", err) },
						func() { remove(outerLifetime) })
				})
				flux.RunPipeline(outer(outerSink), flux.CopyContext(outerLifetime, sharedCtx))

				return d.Lifetime
			}
		}
	}
}
