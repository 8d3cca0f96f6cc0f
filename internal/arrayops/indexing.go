package arrayops

import (
	"fmt"

	"github.com/born-ml/tfnp/internal/linalg"
	"github.com/born-ml/tfnp/internal/tensor"
)

// oneHotTolerance absorbs float representations of integer indices.
const oneHotTolerance = 0.1

// Gather takes slices of params along an axis (default 0) at indices.
// Only the plain axis gather is supported: ValidateIndices and a non-zero
// BatchDims fail with tensor.ErrUnimplemented.
func (l *Library) Gather(params, indices *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	o := apply(opts)
	if o.validateIndices != nil {
		return nil, fmt.Errorf("gather: %w: validate_indices", tensor.ErrUnimplemented)
	}
	if o.batchDims != 0 {
		return nil, fmt.Errorf("gather: %w: batch_dims=%d", tensor.ErrUnimplemented, o.batchDims)
	}
	out, err := tensor.Take(params, indices, o.axisOr(0))
	if err != nil {
		return nil, fmt.Errorf("gather: %w", err)
	}
	return out, nil
}

// GatherND is not supported.
func (l *Library) GatherND(_, _ *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	return nil, fmt.Errorf("gather_nd: %w", tensor.ErrUnimplemented)
}

// OneHot encodes indices as vectors of length depth holding OnValue at the
// index and OffValue elsewhere. The depth axis goes at Axis (default last).
// Indices outside [0, depth) produce all-off rows.
func (l *Library) OneHot(indices *tensor.RawTensor, depth int, opts ...Option) (*tensor.RawTensor, error) {
	o := apply(opts)
	if depth < 0 {
		return nil, fmt.Errorf("one_hot: %w: depth must be >= 0, got %d", tensor.ErrInvalidArgument, depth)
	}
	dtype := o.dtypeOr(tensor.Float32)

	grid, err := tensor.Arange(0, float64(depth), 1, tensor.Float32)
	if err != nil {
		return nil, fmt.Errorf("one_hot: %w", err)
	}
	expanded, err := tensor.ExpandDims(indices, -1)
	if err != nil {
		return nil, fmt.Errorf("one_hot: %w", err)
	}
	distance, err := l.backend.Sub(grid, expanded)
	if err != nil {
		return nil, fmt.Errorf("one_hot: %w", err)
	}
	hot, err := l.backend.Less(l.backend.Abs(distance), tensor.Scalar(oneHotTolerance))
	if err != nil {
		return nil, fmt.Errorf("one_hot: %w", err)
	}

	on, err := tensor.Full(tensor.Shape{}, o.onValue, dtype)
	if err != nil {
		return nil, fmt.Errorf("one_hot: %w", err)
	}
	off, err := tensor.Full(tensor.Shape{}, o.offValue, dtype)
	if err != nil {
		return nil, fmt.Errorf("one_hot: %w", err)
	}
	out, err := tensor.Where(hot, on, off)
	if err != nil {
		return nil, fmt.Errorf("one_hot: %w", err)
	}
	return moveLastAxis(out, o.axisOr(-1))
}

// moveLastAxis moves the last axis of x to position axis.
func moveLastAxis(x *tensor.RawTensor, axis int) (*tensor.RawTensor, error) {
	r := x.Rank()
	ax, err := tensor.NormalizeAxis(axis, r)
	if err != nil {
		return nil, fmt.Errorf("one_hot: %w", err)
	}
	if ax == r-1 {
		return x, nil
	}
	perm := make([]int, 0, r)
	for i := 0; i < r-1; i++ {
		if i == ax {
			perm = append(perm, r-1)
		}
		perm = append(perm, i)
	}
	return tensor.Transpose(x, perm...)
}

// SearchSorted returns, for every value, the index at which it would be
// inserted into sortedSequence to keep it sorted. Side picks the first
// ("left") or last ("right") such index; OutType sets the result dtype.
func (l *Library) SearchSorted(sortedSequence, values *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	o := apply(opts)
	if err := checkIntType("searchsorted", o.outType); err != nil {
		return nil, err
	}
	idx, err := tensor.SearchSorted(sortedSequence, values, tensor.SearchSide(o.side))
	if err != nil {
		return nil, err
	}
	return tensor.Cast(idx, o.outType)
}

// Where selects from x where condition is true and from y elsewhere, with
// broadcasting. With neither x nor y it returns the coordinates of true
// elements as an int64 [count, rank] matrix.
func (l *Library) Where(condition, x, y *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	switch {
	case x == nil && y == nil:
		return tensor.NonZero(condition), nil
	case x == nil || y == nil:
		return nil, fmt.Errorf("where: %w: x and y must both be given or both be nil", tensor.ErrInvalidArgument)
	}
	return tensor.Where(condition, x, y)
}

// Norm is linalg.Norm, exposed at the top level as TensorFlow does.
func (l *Library) Norm(x *tensor.RawTensor, opts ...linalg.Option) (*tensor.RawTensor, error) {
	return l.linalg.Norm(x, opts...)
}
