// Package flux is a reactive dataflow core: a cancellation-tree
// lifetime primitive, a next/error/complete observer contract, a
// pluggable execution medium (strand), and a small algebra of pipeline
// stages composed with named generic functions in place of an
// overloaded operator.
//
// # Lifetimes
//
// [Subscription] is a shared handle to a cancellation node: a tree of
// nested lifetimes with LIFO stop callbacks and LIFO destructors, plus
// join semantics for waiting out a full teardown. [New] creates a root;
// [Subscription.InsertChild] nests another subscription inside it.
// [State] is a value owned by a subscription, allocated with
// [MakeState] and destroyed exactly once when the subscription stops.
//
// # Observers
//
// [Observer] is a next/error/complete sink bound to a lifetime: Next
// may fire any number of times while the lifetime is live, and at most
// one of Error or Complete fires exactly once, implicitly stopping it.
// [MakeObserver] builds a direct observer; [MakeDelegatingObserver]
// builds one that forwards to a downstream observer by default, so
// stateless stages don't need to capture three callbacks of their own.
//
// # Strands and contexts
//
// [Strand] is where and when a deferred task runs: [NewImmediateStrand]
// blocks the calling goroutine until each deadline; the runloop
// subpackage provides a queued strand and a dedicated-goroutine
// variant. [Context] pairs a strand with an optional payload and a
// [MakeStrand] policy for creating sibling strands of the same kind;
// [Defer], [DeferAt], [DeferAfter], and [DeferPeriodic] schedule work
// on either.
//
// # Pipelines
//
// [Source], [Sink], [Transform], [SourceTransform], and [SinkTransform]
// are the five stage kinds; [Runnable] is what results from fully
// composing a pipeline with a terminal sink. Go has no operator
// overloading and a generic method cannot introduce a new type
// parameter, so composition is a set of named functions — [PipeSource],
// [Start], [ChainTransform], [Bind], [ChainAdapt], [AdaptTransform],
// [AdaptSink], [ChainTransformAdapt], [StartSinkTransform], and
// [RunPipeline] — one per rewriting rule, instead of a single
// overloaded operator.
//
// The [github.com/mirelis/flux/ops] subpackage provides the reference
// operator set (Ints, FromSlice, Intervals, Filter, Map, Take,
// LastOrDefault, Finalize, ObserveOn, Delay, Merge, PrintTo) built on
// top of this algebra; [github.com/mirelis/flux/runloop] provides the
// queued and per-thread strand flavors plus a shared-strand make-strand
// policy.
package flux
