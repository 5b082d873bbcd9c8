package ops

import (
	"errors"
	"time"

	flux "github.com/mirelis/flux"
)

// errBoom is a sentinel stream error shared by tests that exercise the
// error path of a transform or combinator.
var errBoom = errors.New("boom")

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) SleepUntil(t time.Time) {
	if t.After(c.now) {
		c.now = t
	}
}

func newTestContext(clock flux.Clock) flux.Context {
	if clock == nil {
		clock = &fakeClock{now: time.Unix(0, 0)}
	}
	return flux.NewContext(flux.New(), flux.ImmediateMakeStrand(clock), nil)
}
