package tensor

import (
	"fmt"
	"math"
)

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrInvalidArgument, shape, shape.NumElements(), len(data))
	}
	raw, err := NewRaw(shape, DataTypeOf[T]())
	if err != nil {
		return nil, err
	}
	copy(Data[T](raw), data)
	return raw, nil
}

// MustFromSlice is FromSlice for literals; it panics on a size mismatch.
func MustFromSlice[T DType](data []T, shape Shape) *RawTensor {
	r, err := FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return r
}

// Vector creates a rank-1 tensor holding data.
func Vector[T DType](data ...T) *RawTensor {
	return MustFromSlice(data, Shape{len(data)})
}

// Scalar creates a rank-0 tensor.
func Scalar[T DType](v T) *RawTensor {
	return MustFromSlice([]T{v}, Shape{})
}

// FromFloat64s builds a tensor of dtype from float64 values.
func FromFloat64s(data []float64, shape Shape, dtype DataType) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrInvalidArgument, shape, shape.NumElements(), len(data))
	}
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	if dtype == Float64 {
		copy(raw.AsFloat64(), data)
		return raw, nil
	}
	for i, v := range data {
		raw.SetFloat64(i, v)
	}
	return raw, nil
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, dtype DataType) (*RawTensor, error) {
	return NewRaw(shape, dtype)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) (*RawTensor, error) {
	return Full(shape, 1, dtype)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64, dtype DataType) (*RawTensor, error) {
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	if value == 0 {
		return raw, nil
	}
	for i := 0; i < raw.NumElements(); i++ {
		raw.SetFloat64(i, value)
	}
	return raw, nil
}

// Eye creates a rows x cols matrix with ones on the main diagonal.
func Eye(rows, cols int, dtype DataType) (*RawTensor, error) {
	raw, err := NewRaw(Shape{rows, cols}, dtype)
	if err != nil {
		return nil, fmt.Errorf("eye: %w", err)
	}
	for i := 0; i < min(rows, cols); i++ {
		raw.SetFloat64(i*cols+i, 1)
	}
	return raw, nil
}

// Arange returns values in [start, limit) spaced by delta.
func Arange(start, limit, delta float64, dtype DataType) (*RawTensor, error) {
	if delta == 0 {
		return nil, fmt.Errorf("arange: %w: delta must be non-zero", ErrInvalidArgument)
	}
	n := int(math.Ceil((limit - start) / delta))
	if n < 0 {
		n = 0
	}
	raw, err := NewRaw(Shape{n}, dtype)
	if err != nil {
		return nil, fmt.Errorf("arange: %w", err)
	}
	for i := 0; i < n; i++ {
		raw.SetFloat64(i, start+float64(i)*delta)
	}
	return raw, nil
}

// Linspace returns num evenly spaced values over [start, stop], endpoints included.
func Linspace(start, stop float64, num int, dtype DataType) (*RawTensor, error) {
	if num < 0 {
		return nil, fmt.Errorf("linspace: %w: num must be >= 0, got %d", ErrInvalidArgument, num)
	}
	raw, err := NewRaw(Shape{num}, dtype)
	if err != nil {
		return nil, fmt.Errorf("linspace: %w", err)
	}
	if num == 1 {
		raw.SetFloat64(0, start)
		return raw, nil
	}
	step := (stop - start) / float64(num-1)
	for i := 0; i < num; i++ {
		raw.SetFloat64(i, start+float64(i)*step)
	}
	if num > 1 {
		raw.SetFloat64(num-1, stop)
	}
	return raw, nil
}

// Cast converts x to dtype. Casting to the same dtype returns a copy.
func Cast(x *RawTensor, dtype DataType) (*RawTensor, error) {
	if x == nil {
		return nil, fmt.Errorf("cast: %w: input tensor is nil", ErrInvalidArgument)
	}
	if x.dtype == dtype {
		return x.Clone(), nil
	}
	result := mustRaw(x.shape, dtype)
	for i := 0; i < x.NumElements(); i++ {
		result.SetFloat64(i, x.Float64At(i))
	}
	return result, nil
}
