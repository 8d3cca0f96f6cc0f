// Package cpu implements the numeric kernels of the array library: broadcasting
// arithmetic, reductions, batched matrix products and dense linear algebra
// built on gonum.
package cpu

import (
	"github.com/born-ml/tfnp/internal/parallel"
)

// Config controls how the backend executes batched kernels.
type Config struct {
	Parallel parallel.Config
}

// DefaultConfig returns the sequential configuration.
func DefaultConfig() Config {
	return Config{Parallel: parallel.DefaultConfig()}
}

// CPUBackend implements array operations on CPU.
// It holds no mutable state; a single instance is safe for concurrent use.
type CPUBackend struct {
	cfg Config
}

// New creates a CPU backend with DefaultConfig.
func New() *CPUBackend {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a CPU backend with the given configuration.
func NewWithConfig(cfg Config) *CPUBackend {
	return &CPUBackend{cfg: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Config returns the backend configuration.
func (cpu *CPUBackend) Config() Config {
	return cpu.cfg
}

// eachBatch runs f for every flattened batch index in [0, n) when f cannot fail.
func (cpu *CPUBackend) eachBatch(n int, f func(i int)) {
	parallel.For(n, f, cpu.cfg.Parallel)
}

// ForEachBatch runs f for every flattened batch index in [0, n), honoring the
// parallel configuration, and returns the first error.
func (cpu *CPUBackend) ForEachBatch(n int, f func(i int) error) error {
	return parallel.ForErr(n, f, cpu.cfg.Parallel)
}
