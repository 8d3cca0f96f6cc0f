// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/tfnp/internal/backend/cpu"
	"github.com/born-ml/tfnp/internal/parallel"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Config controls how the backend schedules batched work.
type Config = internalcpu.Config

// ParallelOptions is the worker pool part of Config.
type ParallelOptions = parallel.Config

// DefaultConfig returns the sequential configuration.
func DefaultConfig() Config {
	return internalcpu.DefaultConfig()
}

// ParallelConfig returns a configuration that spreads batches over
// one worker per CPU.
func ParallelConfig() Config {
	return Config{Parallel: parallel.CPUConfig()}
}

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	fmt.Println(backend.Name()) // CPU
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with the given configuration.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}
