package ops

import (
	"testing"

	flux "github.com/mirelis/flux"
)

func TestFinalizeRunsOnStopAndForwardsValues(t *testing.T) {
	finalized := false
	source := flux.PipeSource(Ints(1, 3), Finalize[int](func() { finalized = true }))

	var got []int
	sub := flux.RunPipeline(flux.Start(source, collect(&got)), newTestContext(nil))
	sub.Join()

	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if !finalized {
		t.Fatal("expected finalizer to run after the pipeline stops")
	}
}

func TestFinalizeRunsLIFOWithOtherStoppers(t *testing.T) {
	var order []int
	chained := flux.ChainTransform(
		Finalize[int](func() { order = append(order, 1) }),
		Finalize[int](func() { order = append(order, 2) }),
	)
	source := flux.PipeSource(Ints(1, 1), chained)

	var got []int
	sub := flux.RunPipeline(flux.Start(source, collect(&got)), newTestContext(nil))
	sub.Join()

	// ChainTransform(F1, F2) = F1(F2(sink)): F2's sink is built first, so
	// its stopper is inserted first; F1's stopper is inserted after.
	// LIFO draining fires the most-recently-inserted stopper first.
	want := []int{1, 2}
	if len(order) != len(want) || order[0] != want[0] || order[1] != want[1] {
		t.Fatalf("got %v, want %v", order, want)
	}
}
