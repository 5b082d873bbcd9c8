package runloop

import flux "github.com/mirelis/flux"

// NewThreadStrand spawns one goroutine whose body is a RunLoopStrand's
// Run, and installs a stopper that wakes it and waits for it to exit —
// an RAII-style stop-then-join guard. Grounded on pool.go's
// NewPool/Close shape (spawn goroutines, wg.Wait() on teardown),
// narrowed from "n workers pulling a shared queue" to "exactly one
// worker owning its own queue".
func NewThreadStrand(lifetime flux.Subscription, clock flux.Clock, spawner flux.Spawner) flux.Strand {
	if spawner == nil {
		spawner = flux.GoSpawner{}
	}
	rl := NewRunLoopStrand(lifetime, clock)
	done := make(chan struct{})
	spawner.Spawn(func() {
		rl.Run()
		close(done)
	})
	lifetime.InsertStopper(func() {
		rl.mu.Lock()
		rl.cond.Broadcast()
		rl.mu.Unlock()
		<-done
	})
	return rl
}
