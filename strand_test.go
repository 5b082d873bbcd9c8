package flux

import (
	"testing"
	"time"
)

// fakeClock lets tests assert exact fire times without real sleeping.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) SleepUntil(t time.Time) {
	if t.After(c.now) {
		c.now = t
	}
}

func TestImmediateStrandFiresUntilNoReschedule(t *testing.T) {
	s := New()
	clock := &fakeClock{now: time.Unix(0, 0)}
	strand := NewImmediateStrand(s, clock)

	var fires []time.Time
	base := clock.now
	task := MakeObserver[Reschedule](s, func(reschedule Reschedule) {
		fires = append(fires, clock.Now())
		if len(fires) < 3 {
			reschedule(base.Add(time.Duration(len(fires)) * time.Second))
		}
	}, nil, nil)

	strand.DeferAt(base, task)

	if len(fires) != 3 {
		t.Fatalf("got %d fires, want 3", len(fires))
	}
	if !s.IsStopped() {
		t.Fatal("task should have completed, stopping its lifetime")
	}
}

func TestImmediateStrandStopsEarlyWhenLifetimeStops(t *testing.T) {
	lifetime := New()
	clock := &fakeClock{now: time.Unix(0, 0)}
	strand := NewImmediateStrand(lifetime, clock)

	fires := 0
	task := MakeObserver[Reschedule](lifetime, func(reschedule Reschedule) {
		fires++
		lifetime.Stop()
		reschedule(clock.now.Add(time.Second))
	}, nil, nil)

	strand.DeferAt(clock.now, task)

	if fires != 1 {
		t.Fatalf("got %d fires, want exactly 1 (strand must stop once lifetime stops)", fires)
	}
}

func TestDeferPeriodicTargetsAreExact(t *testing.T) {
	lifetime := New()
	clock := &fakeClock{now: time.Unix(100, 0)}
	strand := NewImmediateStrand(lifetime, clock)

	initial := clock.now
	period := 100 * time.Millisecond
	var got []int
	var fireTimes []time.Time

	DeferPeriodic(strand, lifetime, initial, period, func(i uint64) {
		got = append(got, int(i))
		fireTimes = append(fireTimes, clock.Now())
		if i == 2 {
			lifetime.Stop()
		}
	})

	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("got %v, want [0 1 2]", got)
	}
	for i, ft := range fireTimes {
		if wantAt := initial.Add(time.Duration(i) * period); !ft.Equal(wantAt) {
			t.Fatalf("fire %d at %v, want %v", i, ft, wantAt)
		}
	}
}
