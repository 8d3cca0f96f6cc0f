package tensor

import (
	"fmt"
	"strings"
)

// Unknown marks a dimension whose size is only known at execution time.
const Unknown = -1

// Value is anything a shape-deriving op can inspect: a concrete RawTensor or
// a Symbol standing in for a value a tracing engine has not produced yet.
type Value interface {
	Dims() Dims
	DType() DataType
}

// Dims is the shape descriptor of a Value. Exactly one of the two variants is
// populated: Concrete (every dimension known) or Symbolic.
type Dims struct {
	concrete Shape
	symbolic *SymbolicShape
}

// SymbolicShape describes a shape with at least one Unknown dimension.
// Rank is always known.
type SymbolicShape struct {
	Dims []int // Unknown for dimensions not yet known
}

// String renders unknown dimensions as "?".
func (s *SymbolicShape) String() string {
	parts := make([]string, len(s.Dims))
	for i, d := range s.Dims {
		if d == Unknown {
			parts[i] = "?"
		} else {
			parts[i] = fmt.Sprint(d)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ConcreteDims wraps a fully known shape.
func ConcreteDims(s Shape) Dims {
	return Dims{concrete: s.Clone()}
}

// SymbolicDims wraps a partially known shape. If every dimension turns out
// to be known the result is concrete.
func SymbolicDims(dims []int) Dims {
	for _, d := range dims {
		if d == Unknown {
			return Dims{symbolic: &SymbolicShape{Dims: append([]int(nil), dims...)}}
		}
	}
	return Dims{concrete: Shape(dims).Clone()}
}

// Concrete returns the known shape and true, or nil and false for a symbolic descriptor.
func (d Dims) Concrete() (Shape, bool) {
	if d.symbolic != nil {
		return nil, false
	}
	return d.concrete, true
}

// Symbolic returns the symbolic shape, or nil for a concrete descriptor.
func (d Dims) Symbolic() *SymbolicShape {
	return d.symbolic
}

// Rank is known in both variants.
func (d Dims) Rank() int {
	if d.symbolic != nil {
		return len(d.symbolic.Dims)
	}
	return len(d.concrete)
}

func (d Dims) String() string {
	if d.symbolic != nil {
		return d.symbolic.String()
	}
	return d.concrete.String()
}

// Symbol is a placeholder for a value produced later by a tracing engine.
// It carries a dtype and a possibly symbolic shape, and no data.
type Symbol struct {
	Name  string
	dims  Dims
	dtype DataType
}

// NewSymbol creates a placeholder. Use Unknown for dimensions not yet known.
func NewSymbol(name string, dtype DataType, dims ...int) *Symbol {
	return &Symbol{Name: name, dims: SymbolicDims(dims), dtype: dtype}
}

// Dims implements Value.
func (s *Symbol) Dims() Dims { return s.dims }

// DType implements Value.
func (s *Symbol) DType() DataType { return s.dtype }

func (s *Symbol) String() string {
	return fmt.Sprintf("Symbol(%s, %s%s)", s.Name, s.dtype, s.dims)
}
