package ops

import (
	"time"

	flux "github.com/mirelis/flux"
)

// Intervals is a source emitting a monotonically increasing counter
// starting at 0, firing at initial and then every period, on a fresh
// strand obtained from makeStrand nested inside the subscriber's
// lifetime. Grounded on chanx/throttle.go's ticker-goroutine idiom,
// generalized from a single rearmed timer into flux's drift-corrected
// periodic scheduling (see context.go's DeferPeriodic).
func Intervals(makeStrand flux.MakeStrand, initial time.Time, period time.Duration) flux.Source[uint64] {
	return func(sink flux.Sink[uint64]) flux.Runnable {
		return func(ctx flux.Context) flux.Subscription {
			o := sink(ctx)
			nested := flux.New()
			o.Lifetime.InsertChild(nested)
			strand := makeStrand(nested)
			flux.DeferPeriodic(strand, nested, initial, period, func(i uint64) {
				o.Next(i)
			})
			return o.Lifetime
		}
	}
}
