// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tf

import (
	"go.uber.org/zap"

	"github.com/born-ml/tfnp/backend/cpu"
	"github.com/born-ml/tfnp/tf/array"
)

// Config configures a namespace.
type Config struct {
	// Backend controls batch scheduling in the CPU backend.
	Backend cpu.Config

	// Logger receives a debug entry per binding. Nil means no logging.
	Logger *zap.Logger

	// Symbolic produces results for values whose shape is not known yet.
	// Nil means placeholder symbols.
	Symbolic array.SymbolicBuilder
}

// DefaultConfig returns a sequential, silent configuration.
func DefaultConfig() Config {
	return Config{
		Backend: cpu.DefaultConfig(),
		Logger:  zap.NewNop(),
	}
}
