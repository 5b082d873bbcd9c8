package runloop

import (
	"time"

	flux "github.com/mirelis/flux"
)

// sharedStrand forwards DeferAt to an underlying strand while reporting
// its own (per-child) lifetime. Stopping that lifetime never touches the
// underlying strand's lifetime; it also does not remove tasks already
// forwarded, which stay queued on the underlying strand under their own
// lifetimes.
type sharedStrand struct {
	lifetime   flux.Subscription
	underlying flux.Strand
}

func (s sharedStrand) Lifetime() flux.Subscription { return s.lifetime }
func (s sharedStrand) Now() time.Time              { return s.underlying.Now() }

func (s sharedStrand) DeferAt(t time.Time, task flux.DeferredTask) {
	s.underlying.DeferAt(t, task)
}

// SharedMakeStrand builds a make-strand policy whose sole state is one
// underlying strand. Every strand it produces multiplexes onto that
// same underlying strand; the policy stops the underlying strand only
// when its own top-level handle (underlying's lifetime) is stopped —
// none of the child strands returned by the policy own it. Grounded on
// rx.h's shared_strand_maker/make_shared_make_strand.
func SharedMakeStrand(underlying flux.Strand) flux.MakeStrand {
	return func(lifetime flux.Subscription) flux.Strand {
		return sharedStrand{lifetime: lifetime, underlying: underlying}
	}
}
