package ops

import (
	"fmt"
	"io"

	flux "github.com/mirelis/flux"
)

// PrintTo is a sink that, for each value, defers writing v and a
// newline onto its context's strand; it counts values in scoped state
// and, on Complete, writes a one-line summary. The summary write
// itself is synchronous rather than deferred: it happens inside the
// Complete callback, before Observer.Complete stops the lifetime.
// Grounded on
// stream.go's ForEach/ToSlice terminal methods, adapted from a
// pull-terminal to a push-sink.
func PrintTo[V any](out io.Writer) flux.Sink[V] {
	return func(ctx flux.Context) flux.Observer[V] {
		lifetime := ctx.Lifetime()
		strand := ctx.Strand()
		count, err := flux.MakeState(lifetime, func() int { return 0 })
		if err != nil {
			return flux.MakeObserver[V](lifetime, nil, nil, nil)
		}

		return flux.MakeObserver[V](lifetime,
			func(v V) {
				*count.Get()++
				// The deferred write task is bound to its own throwaway
				// lifetime, not lifetime itself: its next never reschedules, so
				// the strand completes it (see strand.go/runloop.go) once the
				// write runs, and Observer.Complete stops whatever lifetime it's
				// bound to. Reusing lifetime here would stop the sink's own
				// subscription after the first value.
				task := flux.MakeObserver[flux.Reschedule](flux.New(), func(flux.Reschedule) {
					fmt.Fprintf(out, "%v\n", v)
				}, nil, nil)
				flux.Defer(strand, task)
			},
			nil,
			func() {
				fmt.Fprintf(out, "%d values received - done!\n", *count.Get())
			})
	}
}
