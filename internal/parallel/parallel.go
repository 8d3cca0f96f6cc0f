// Package parallel runs independent per-batch-element work for the CPU backend.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Upper bound on concurrently running goroutines.
	MinChunkSize int  // Minimum items before going parallel at all.
}

// DefaultConfig is sequential. Batched linear algebra keeps the one-element-
// at-a-time order of the array library it mirrors unless a caller opts in.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		NumWorkers:   1,
		MinChunkSize: 64,
	}
}

// CPUConfig enables parallelism across all CPUs.
func CPUConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 8,
	}
}

// For executes f(i) for i in [0, n).
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	_ = ForErr(n, func(i int) error {
		f(i)
		return nil
	}, cfg)
}

// ForErr executes f(i) for i in [0, n) and returns the first error.
// Sequential execution stops at the first failing index; parallel execution
// reports whichever failure the errgroup observed first.
func ForErr(n int, f func(i int) error, cfg Config) error {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return f(i) })
	}
	return g.Wait()
}
