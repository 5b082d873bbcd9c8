package flux

import (
	"errors"
	"testing"
)

func TestMakeStateConstructsInPlace(t *testing.T) {
	s := New()
	st, err := MakeState(s, func() int { return 42 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := *st.Get(); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	if !st.Lifetime().Equal(s) {
		t.Fatal("state's lifetime should be the owning subscription")
	}
}

func TestMakeStateOnStoppedSubscriptionReturnsErrStopped(t *testing.T) {
	s := New()
	s.Stop()
	_, err := MakeState(s, func() int { return 1 })
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("got %v, want ErrStopped", err)
	}
}

func TestStateDestroyedExactlyOnceOnSubscriptionStop(t *testing.T) {
	s := New()
	stopperRuns := 0
	st, err := MakeState(s, func() int { return 7 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.InsertStopper(func() {
		// Observe the value is still alive right up to stop draining.
		if *st.Get() != 7 {
			t.Errorf("state should still be alive while stoppers run")
		}
		stopperRuns++
	})

	s.Stop()
	s.Join()

	if stopperRuns != 1 {
		t.Fatalf("got %d stopper runs, want exactly 1", stopperRuns)
	}
	// The destructor resets the payload to its zero value once stopping
	// has drained.
	if *st.Get() != 0 {
		t.Fatalf("state not destroyed after Join, got %d", *st.Get())
	}
}

func TestCopyingStateHandleSharesOnePayload(t *testing.T) {
	s := New()
	st, err := MakeState(s, func() int { return 1 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clone := st
	*clone.Get() = 9
	if *st.Get() != 9 {
		t.Fatal("copying a State handle should not clone the underlying value")
	}
}

func TestAdoptStateRebindsOwnerWithoutReallocating(t *testing.T) {
	old := New()
	st, err := MakeState(old, func() int { return 3 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	newOwner := New()
	adopted := AdoptState(newOwner, st)

	if !adopted.Lifetime().Equal(newOwner) {
		t.Fatal("AdoptState should rebind the lifetime to the new owner")
	}
	if adopted.Get() != st.Get() {
		t.Fatal("AdoptState should not reallocate the payload")
	}
}
