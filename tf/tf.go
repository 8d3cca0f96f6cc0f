// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tf

import (
	"sync"

	"go.uber.org/zap"

	"github.com/born-ml/tfnp/backend/cpu"
	"github.com/born-ml/tfnp/internal/arrayops"
	"github.com/born-ml/tfnp/internal/linalg"
	"github.com/born-ml/tfnp/internal/namespace"
	"github.com/born-ml/tfnp/internal/tfmath"
)

// Lookup errors, matched with errors.Is.
var (
	ErrNotFound  = namespace.ErrNotFound
	ErrSignature = namespace.ErrSignature
)

// TF is a built namespace. It is immutable and safe for concurrent use.
type TF struct {
	backend *cpu.Backend
	ns      *namespace.Namespace
}

// New builds the namespace described by cfg.
func New(cfg Config) *TF {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	backend := cpu.NewWithConfig(cfg.Backend)
	libs := libraries{
		linalg: linalg.New(backend),
		array:  arrayops.New(backend, cfg.Symbolic),
		math:   tfmath.New(backend),
	}
	ns := namespace.NewBuilder(namespace.WithLogger(logger.Named("namespace"))).
		RegisterAll(libs.entries()).
		Build()
	return &TF{backend: backend, ns: ns}
}

// Default returns the process-wide namespace built from DefaultConfig.
var Default = sync.OnceValue(func() *TF {
	return New(DefaultConfig())
})

// Backend returns the backend the namespace is bound to.
func (t *TF) Backend() *cpu.Backend {
	return t.backend
}

// Lookup resolves a dotted path such as "linalg.band_part".
func (t *TF) Lookup(path string) (any, bool) {
	return t.ns.Lookup(path)
}

// Walk visits every bound function in sorted dotted-path order.
func (t *TF) Walk(visit func(path string, fn any)) {
	t.ns.Walk(visit)
}

// Modules returns the sorted names bound at the top level.
func (t *TF) Modules() []string {
	return t.ns.Names()
}

// Len returns the number of bound functions.
func (t *TF) Len() int {
	return t.ns.Len()
}

// Func looks up path in t and asserts it to F.
func Func[F any](t *TF, path string) (F, error) {
	return namespace.Func[F](t.ns, path)
}
