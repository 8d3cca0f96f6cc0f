package tensor

import (
	"fmt"
	"unsafe"

	"github.com/x448/float16"
)

// RawTensor is the array value every backend op consumes and produces.
//
// Values are immutable from the point of view of the ops in this module:
// every op allocates a fresh result. The only mutators (Set*, Data views)
// exist for constructing results and are never applied to an op's inputs.
type RawTensor struct {
	data   []byte
	shape  Shape
	stride []int // element strides, row-major
	dtype  DataType
}

// NewRaw creates a zero-filled RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// mustRaw is NewRaw for shapes already validated by the caller.
func mustRaw(shape Shape, dtype DataType) *RawTensor {
	r, err := NewRaw(shape, dtype)
	if err != nil {
		panic(err)
	}
	return r
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's element strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Rank returns the number of dimensions.
func (r *RawTensor) Rank() int {
	return len(r.shape)
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// Dims implements Value. A RawTensor always has a concrete shape.
func (r *RawTensor) Dims() Dims {
	return ConcreteDims(r.shape)
}

// Bytes returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Bytes() []byte {
	return r.data
}

// Clone returns a deep copy that shares no memory with r.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
	}
}

// String renders dtype and shape, not the contents.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor(%s%v)", r.dtype, []int(r.shape))
}

// Data returns a typed zero-copy view of t's elements.
// Panics if T does not match the tensor's dtype.
func Data[T DType](r *RawTensor) []T {
	want := DataTypeOf[T]()
	if r.dtype != want {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, want))
	}
	n := r.NumElements()
	if n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*T)(unsafe.Pointer(&r.data[0])), n)
}

// AsFloat32 interprets the data as []float32.
func (r *RawTensor) AsFloat32() []float32 { return Data[float32](r) }

// AsFloat64 interprets the data as []float64.
func (r *RawTensor) AsFloat64() []float64 { return Data[float64](r) }

// AsInt32 interprets the data as []int32.
func (r *RawTensor) AsInt32() []int32 { return Data[int32](r) }

// AsInt64 interprets the data as []int64.
func (r *RawTensor) AsInt64() []int64 { return Data[int64](r) }

// AsBool interprets the data as []bool.
func (r *RawTensor) AsBool() []bool { return Data[bool](r) }

// AsFloat16 interprets the data as []float16.Float16.
func (r *RawTensor) AsFloat16() []float16.Float16 { return Data[float16.Float16](r) }

// Float64At returns element i (flat, row-major) converted to float64.
func (r *RawTensor) Float64At(i int) float64 {
	p := unsafe.Pointer(&r.data[i*r.dtype.Size()]) //nolint:gosec // index checked by slice bounds
	switch r.dtype {
	case Float32:
		return float64(*(*float32)(p))
	case Float64:
		return *(*float64)(p)
	case Int32:
		return float64(*(*int32)(p))
	case Int64:
		return float64(*(*int64)(p))
	case Uint8:
		return float64(*(*uint8)(p))
	case Bool:
		if *(*bool)(p) {
			return 1
		}
		return 0
	case Float16:
		return float64((*(*float16.Float16)(p)).Float32())
	default:
		panic(fmt.Sprintf("unsupported dtype %v", r.dtype))
	}
}

// SetFloat64 stores v at flat index i, converting to the tensor's dtype.
// Integer types truncate toward zero; Bool stores v != 0.
func (r *RawTensor) SetFloat64(i int, v float64) {
	p := unsafe.Pointer(&r.data[i*r.dtype.Size()]) //nolint:gosec // index checked by slice bounds
	switch r.dtype {
	case Float32:
		*(*float32)(p) = float32(v)
	case Float64:
		*(*float64)(p) = v
	case Int32:
		*(*int32)(p) = int32(v)
	case Int64:
		*(*int64)(p) = int64(v)
	case Uint8:
		*(*uint8)(p) = uint8(v)
	case Bool:
		*(*bool)(p) = v != 0
	case Float16:
		*(*float16.Float16)(p) = float16.Fromfloat32(float32(v))
	default:
		panic(fmt.Sprintf("unsupported dtype %v", r.dtype))
	}
}

// At returns the element at the given coordinates as float64.
func (r *RawTensor) At(indices ...int) float64 {
	if len(indices) != len(r.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(r.shape), len(indices)))
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= r.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, r.shape[i]))
		}
		offset += idx * r.stride[i]
	}
	return r.Float64At(offset)
}

// Float64s returns a fresh float64 copy of all elements.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	if r.dtype == Float64 {
		copy(out, r.AsFloat64())
		return out
	}
	for i := range out {
		out[i] = r.Float64At(i)
	}
	return out
}

// Ints returns all elements converted to int.
func (r *RawTensor) Ints() []int {
	out := make([]int, r.NumElements())
	for i := range out {
		out[i] = int(r.Float64At(i))
	}
	return out
}

// copyElem copies element j of src into element i of dst. Both must share a dtype.
func copyElem(dst *RawTensor, i int, src *RawTensor, j int) {
	es := dst.dtype.Size()
	copy(dst.data[i*es:(i+1)*es], src.data[j*es:(j+1)*es])
}
