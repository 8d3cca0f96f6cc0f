// Package namespace builds the mirrored TensorFlow module tree.
//
// A Builder takes (path, name, callable) entries, creating intermediate
// modules on first reference, and Build freezes the result into an
// immutable Namespace that downstream code looks functions up in by
// dotted path, e.g. "linalg.band_part".
package namespace

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no function is bound at a path.
	ErrNotFound = errors.New("namespace: not found")

	// ErrSignature is returned when a bound function has a different type than requested.
	ErrSignature = errors.New("namespace: signature mismatch")
)

// Entry describes one binding.
type Entry struct {
	Path     []string // Module path below the root, e.g. {"linalg"}.
	Declared string   // Declared name of the implementation, e.g. "_cond".
	Name     string   // Explicit exported name; overrides Declared when set.
	Private  bool     // Strip one leading underscore from Declared.
	Fn       any      // The callable.
}

// ResolvedName applies the naming rule: explicit Name, else Declared with one
// leading underscore removed for private entries, else Declared verbatim.
func (e Entry) ResolvedName() string {
	switch {
	case e.Name != "":
		return e.Name
	case e.Private:
		return strings.TrimPrefix(e.Declared, "_")
	default:
		return e.Declared
	}
}

// Namespace is one module of the mirrored tree. It is immutable once built
// and safe for concurrent use.
type Namespace struct {
	name    string
	modules map[string]*Namespace
	funcs   map[string]any
}

func newNamespace(name string) *Namespace {
	return &Namespace{
		name:    name,
		modules: make(map[string]*Namespace),
		funcs:   make(map[string]any),
	}
}

// Name returns the module's dotted path, "" for the root.
func (ns *Namespace) Name() string {
	return ns.name
}

// Sub returns the child module with the given name.
func (ns *Namespace) Sub(name string) (*Namespace, bool) {
	m, ok := ns.modules[name]
	return m, ok
}

// Lookup resolves a dotted path such as "linalg.band_part".
func (ns *Namespace) Lookup(path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := ns
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur.modules[p]
		if !ok {
			return nil, false
		}
		cur = next
	}
	fn, ok := cur.funcs[parts[len(parts)-1]]
	return fn, ok
}

// Names returns the sorted names of functions and modules bound directly here.
func (ns *Namespace) Names() []string {
	names := make([]string, 0, len(ns.funcs)+len(ns.modules))
	for n := range ns.funcs {
		names = append(names, n)
	}
	for n := range ns.modules {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Walk visits every bound function in sorted dotted-path order.
func (ns *Namespace) Walk(visit func(path string, fn any)) {
	var rec func(prefix string, m *Namespace)
	rec = func(prefix string, m *Namespace) {
		for _, n := range m.Names() {
			if fn, ok := m.funcs[n]; ok {
				visit(prefix+n, fn)
			}
			if sub, ok := m.modules[n]; ok {
				rec(prefix+n+".", sub)
			}
		}
	}
	rec("", ns)
}

// Len returns the number of functions bound in this module and below.
func (ns *Namespace) Len() int {
	n := len(ns.funcs)
	for _, m := range ns.modules {
		n += m.Len()
	}
	return n
}

// Func looks up path and asserts it to F.
//
//	band, err := namespace.Func[linalg.BandPartFunc](ns, "linalg.band_part")
func Func[F any](ns *Namespace, path string) (F, error) {
	var zero F
	v, ok := ns.Lookup(path)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	fn, ok := v.(F)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T, not %T", ErrSignature, path, v, zero)
	}
	return fn, nil
}

// Builder assembles a Namespace. It is not safe for concurrent use and must
// not be used after Build.
type Builder struct {
	root   *Namespace
	logger *zap.Logger
	built  bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger makes the builder log each binding at debug level.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{root: newNamespace(""), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register binds e.Fn under e.Path. Missing modules along the path are
// created; existing ones are reused. Registering the same path again rebinds
// the leaf to the latest callable.
func (b *Builder) Register(e Entry) *Builder {
	if b.built {
		panic("namespace: Register called after Build")
	}
	cur := b.root
	for _, p := range e.Path {
		next, ok := cur.modules[p]
		if !ok {
			next = newNamespace(joinPath(cur.name, p))
			cur.modules[p] = next
		}
		cur = next
	}

	name := e.ResolvedName()
	_, rebound := cur.funcs[name]
	cur.funcs[name] = e.Fn
	b.logger.Debug("bound op",
		zap.String("path", joinPath(cur.name, name)),
		zap.Bool("rebound", rebound))
	return b
}

// RegisterAll registers entries in order.
func (b *Builder) RegisterAll(entries []Entry) *Builder {
	for _, e := range entries {
		b.Register(e)
	}
	return b
}

// Build freezes the tree.
func (b *Builder) Build() *Namespace {
	b.built = true
	b.logger.Debug("namespace built", zap.Int("ops", b.root.Len()))
	return b.root
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
