// Package demo wires the reference operators into one pipeline and
// runs it to completion, the way cmd/main.go exercised the teacher's
// Scope/Spawner model.
package demo

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	flux "github.com/mirelis/flux"
	"github.com/mirelis/flux/ops"
)

// Run builds ints(first, last) | filter(even) | map(x*2) | printto(out)
// over an immediate strand, starts it, and blocks until it completes.
// Structured logging is grounded on kbukum-gokit/logger/logger.go's
// zerolog wrapping — the demo harness is the one place in this module
// that logs; the L1-L4 core stays dependency-free.
func Run(first, last int, out io.Writer) error {
	logger := zerolog.New(out).With().Timestamp().Logger()
	started := time.Now()
	logger.Info().Int("first", first).Int("last", last).Msg("starting pipeline")

	lifetime := flux.New()
	ctx := flux.NewContext(lifetime, nil, nil)

	source := ops.Ints(first, last)
	evens := flux.PipeSource(source, ops.Filter(func(v int) bool { return v%2 == 0 }))
	doubled := flux.PipeSource(evens, ops.Map(func(v int) int { return v * 2 }))

	sub := flux.RunPipeline(flux.Start[int](doubled, ops.PrintTo[int](out)), ctx)
	sub.Join()

	logger.Info().Dur("elapsed", time.Since(started)).Msg("pipeline complete")
	return nil
}
