// Package tensor provides the array values, shapes and structural raw
// operations that the tfnp backend builds its TensorFlow-shaped API on.
package tensor

import (
	"fmt"

	"github.com/x448/float16"
)

// DType is a constraint for supported element types.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool | float16.Float16
}

// DataType represents runtime type information for arrays.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
	Float16
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float16:
		return 2
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns the TensorFlow name of the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	case Float16:
		return "float16"
	default:
		return "unknown"
	}
}

// ParseDataType maps a TensorFlow dtype name such as "float32" to a DataType.
func ParseDataType(name string) (DataType, error) {
	for dt := Float32; dt <= Float16; dt++ {
		if dt.String() == name {
			return dt, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown dtype %q", ErrInvalidArgument, name)
}

// IsFloat reports whether dt is a floating point type.
func (dt DataType) IsFloat() bool {
	return dt == Float16 || dt == Float32 || dt == Float64
}

// IsInteger reports whether dt is an integer type.
func (dt DataType) IsInteger() bool {
	return dt == Int32 || dt == Int64 || dt == Uint8
}

// Promote returns the result type of a binary arithmetic op on a and b.
// Floats win over integers, wider wins over narrower, bool loses to all.
func Promote(a, b DataType) DataType {
	if a == b {
		return a
	}
	rank := func(dt DataType) int {
		switch dt {
		case Bool:
			return 0
		case Uint8:
			return 1
		case Int32:
			return 2
		case Int64:
			return 3
		case Float16:
			return 4
		case Float32:
			return 5
		default:
			return 6
		}
	}
	if rank(a) >= rank(b) {
		return a
	}
	return b
}

// DataTypeOf infers DataType from a generic type T.
func DataTypeOf[T DType]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	case float16.Float16:
		return Float16
	default:
		panic("unsupported type")
	}
}
