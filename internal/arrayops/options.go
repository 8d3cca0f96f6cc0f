package arrayops

import (
	"github.com/born-ml/tfnp/internal/tensor"
)

type options struct {
	axes            []int
	dtype           tensor.DataType
	dtypeSet        bool
	outType         tensor.DataType
	onValue         float64
	offValue        float64
	mode            string
	constantValues  float64
	side            string
	num             int
	perm            []int
	conjugate       bool
	validateIndices *bool
	batchDims       int
	limit           *float64
	delta           float64
	indexing        string
}

func apply(opts []Option) options {
	o := options{
		outType:  tensor.Int32,
		onValue:  1,
		mode:     "CONSTANT",
		side:     "left",
		num:      -1,
		delta:    1,
		indexing: "xy",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// axisOr returns the single axis requested, or def when Axis was not given.
func (o options) axisOr(def int) int {
	if len(o.axes) == 0 {
		return def
	}
	return o.axes[0]
}

// dtypeOr returns the requested dtype, or def when DType was not given.
func (o options) dtypeOr(def tensor.DataType) tensor.DataType {
	if !o.dtypeSet {
		return def
	}
	return o.dtype
}

// Option sets a TensorFlow keyword argument. Ops ignore options they have
// no keyword for.
type Option func(*options)

// Name is accepted for signature compatibility and ignored.
func Name(string) Option {
	return func(*options) {}
}

// Axis sets the axis keyword. Squeeze accepts several; other ops use the first.
func Axis(axes ...int) Option {
	return func(o *options) { o.axes = append([]int(nil), axes...) }
}

// DType sets the result element type.
func DType(dt tensor.DataType) Option {
	return func(o *options) { o.dtype, o.dtypeSet = dt, true }
}

// OutType sets the integer type of Shape, Size and SearchSorted. Defaults to int32.
func OutType(dt tensor.DataType) Option {
	return func(o *options) { o.outType = dt }
}

// OnValue is the OneHot value at the hot index. Defaults to 1.
func OnValue(v float64) Option {
	return func(o *options) { o.onValue = v }
}

// OffValue is the OneHot value elsewhere. Defaults to 0.
func OffValue(v float64) Option {
	return func(o *options) { o.offValue = v }
}

// Mode is the Pad mode: CONSTANT (default), REFLECT or SYMMETRIC, in any case.
func Mode(mode string) Option {
	return func(o *options) { o.mode = mode }
}

// ConstantValues is the fill of Pad in CONSTANT mode.
func ConstantValues(v float64) Option {
	return func(o *options) { o.constantValues = v }
}

// Side is "left" (default) or "right" for SearchSorted.
func Side(side string) Option {
	return func(o *options) { o.side = side }
}

// Num is the expected piece count of Split and Unstack.
func Num(n int) Option {
	return func(o *options) { o.num = n }
}

// Perm sets the Transpose permutation. Defaults to reversing the axes.
func Perm(perm ...int) Option {
	return func(o *options) { o.perm = append([]int(nil), perm...) }
}

// Conjugate conjugates the Transpose result.
func Conjugate(v bool) Option {
	return func(o *options) { o.conjugate = v }
}

// ValidateIndices is a deprecated Gather keyword. Setting it is not supported.
func ValidateIndices(v bool) Option {
	return func(o *options) { o.validateIndices = &v }
}

// BatchDims sets the Gather batch dimensions. Only 0 is supported.
func BatchDims(n int) Option {
	return func(o *options) { o.batchDims = n }
}

// Limit sets the Range end. Without it Range counts from 0 to start.
func Limit(v float64) Option {
	return func(o *options) { o.limit = &v }
}

// Delta sets the Range step. Defaults to 1.
func Delta(v float64) Option {
	return func(o *options) { o.delta = v }
}

// Indexing is "xy" (default, Cartesian) or "ij" (matrix) for Meshgrid.
func Indexing(mode string) Option {
	return func(o *options) { o.indexing = mode }
}
