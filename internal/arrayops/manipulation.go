package arrayops

import (
	"fmt"
	"strings"

	"github.com/born-ml/tfnp/internal/tensor"
)

// Concat joins values along axis.
func (l *Library) Concat(values []*tensor.RawTensor, axis int, _ ...Option) (*tensor.RawTensor, error) {
	return tensor.Concat(values, axis)
}

// Stack joins equally shaped values along a new axis (default 0).
func (l *Library) Stack(values []*tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	return tensor.Stack(values, apply(opts).axisOr(0))
}

// Unstack splits value along an axis (default 0) into slices with that axis
// removed. Num, when given, must match the axis length.
func (l *Library) Unstack(value *tensor.RawTensor, opts ...Option) ([]*tensor.RawTensor, error) {
	o := apply(opts)
	ax, err := tensor.NormalizeAxis(o.axisOr(0), value.Rank())
	if err != nil {
		return nil, fmt.Errorf("unstack: %w", err)
	}
	n := value.Shape()[ax]
	if o.num >= 0 && o.num != n {
		return nil, fmt.Errorf("unstack: %w: num=%d but axis %d has size %d", tensor.ErrInvalidArgument, o.num, ax, n)
	}
	out := make([]*tensor.RawTensor, n)
	for i := range out {
		s, err := tensor.SliceAxis(value, ax, i, i+1)
		if err != nil {
			return nil, fmt.Errorf("unstack: %w", err)
		}
		if out[i], err = tensor.Squeeze(s, ax); err != nil {
			return nil, fmt.Errorf("unstack: %w", err)
		}
	}
	return out, nil
}

// ExpandDims inserts a size-1 axis at axis.
func (l *Library) ExpandDims(x *tensor.RawTensor, axis int, _ ...Option) (*tensor.RawTensor, error) {
	return tensor.ExpandDims(x, axis)
}

// Squeeze removes size-1 axes: those named by Axis, or all of them.
func (l *Library) Squeeze(x *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	return tensor.Squeeze(x, apply(opts).axes...)
}

// Reshape gives x a new shape; one dimension may be -1.
func (l *Library) Reshape(x *tensor.RawTensor, shape []int, _ ...Option) (*tensor.RawTensor, error) {
	return tensor.Reshape(x, tensor.Shape(shape).Clone())
}

// Transpose permutes the axes of a by Perm, reversing them by default.
func (l *Library) Transpose(a *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	o := apply(opts)
	t, err := tensor.Transpose(a, o.perm...)
	if err != nil {
		return nil, err
	}
	if o.conjugate {
		return l.backend.Conj(t), nil
	}
	return t, nil
}

// Tile repeats x multiples[i] times along axis i.
func (l *Library) Tile(x *tensor.RawTensor, multiples []int, _ ...Option) (*tensor.RawTensor, error) {
	if len(multiples) != x.Rank() {
		return nil, fmt.Errorf("tile: %w: %d multiples for rank %d", tensor.ErrInvalidArgument, len(multiples), x.Rank())
	}
	return tensor.Tile(x, multiples)
}

// Reverse flips x along each axis in axis, which may be a scalar or a vector.
func (l *Library) Reverse(x, axis *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	if axis.Rank() > 1 {
		return nil, fmt.Errorf("reverse: %w: axis must be a scalar or vector, got shape %v", tensor.ErrInvalidRank, axis.Shape())
	}
	result := x
	for _, ax := range axis.Ints() {
		var err error
		if result, err = tensor.Flip(result, ax); err != nil {
			return nil, fmt.Errorf("reverse: %w", err)
		}
	}
	if result == x {
		return x.Clone(), nil
	}
	return result, nil
}

// Roll shifts x with wrap-around. shift and axis are scalars or equal-length
// vectors.
func (l *Library) Roll(x, shift, axis *tensor.RawTensor, _ ...Option) (*tensor.RawTensor, error) {
	if shift.Rank() > 1 || axis.Rank() > 1 {
		return nil, fmt.Errorf("roll: %w: shift %v and axis %v must be scalars or vectors",
			tensor.ErrInvalidRank, shift.Shape(), axis.Shape())
	}
	shifts, axes := shift.Ints(), axis.Ints()
	if len(shifts) != len(axes) {
		return nil, fmt.Errorf("roll: %w: %d shifts for %d axes", tensor.ErrInvalidArgument, len(shifts), len(axes))
	}
	if len(axes) == 0 {
		return x.Clone(), nil
	}
	return tensor.Roll(x, shifts, axes)
}

// Slice extracts size[i] elements starting at begin[i] on every axis.
// A size of -1 takes everything to the end of the axis.
func (l *Library) Slice(x *tensor.RawTensor, begin, size []int, _ ...Option) (*tensor.RawTensor, error) {
	if len(begin) != x.Rank() || len(size) != x.Rank() {
		return nil, fmt.Errorf("slice: %w: begin %v and size %v must both have length %d",
			tensor.ErrInvalidArgument, begin, size, x.Rank())
	}
	stops := make([]int, len(begin))
	for i, b := range begin {
		n := x.Shape()[i]
		switch {
		case b < 0 || b > n:
			return nil, fmt.Errorf("slice: %w: begin %d out of range for axis %d of size %d", tensor.ErrInvalidArgument, b, i, n)
		case size[i] == -1:
			stops[i] = n
		case size[i] < 0 || b+size[i] > n:
			return nil, fmt.Errorf("slice: %w: size %d from %d exceeds axis %d of size %d",
				tensor.ErrInvalidArgument, size[i], b, i, n)
		default:
			stops[i] = b + size[i]
		}
	}
	return tensor.SliceRanges(x, begin, stops)
}

// Split cuts value along an axis (default 0). numOrSizeSplits is either a
// scalar count of equal pieces or a vector of piece sizes, one of which may
// be -1 for whatever remains.
func (l *Library) Split(value, numOrSizeSplits *tensor.RawTensor, opts ...Option) ([]*tensor.RawTensor, error) {
	o := apply(opts)
	ax, err := tensor.NormalizeAxis(o.axisOr(0), value.Rank())
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	n := value.Shape()[ax]

	var sizes []int
	switch numOrSizeSplits.Rank() {
	case 0:
		count := numOrSizeSplits.Ints()[0]
		if count <= 0 || n%count != 0 {
			return nil, fmt.Errorf("split: %w: cannot split axis of size %d into %d equal pieces",
				tensor.ErrInvalidArgument, n, count)
		}
		sizes = make([]int, count)
		for i := range sizes {
			sizes[i] = n / count
		}
	case 1:
		if sizes, err = splitSizes(numOrSizeSplits.Ints(), n); err != nil {
			return nil, fmt.Errorf("split: %w", err)
		}
	default:
		return nil, fmt.Errorf("split: %w: num_or_size_splits must be a scalar or vector, got shape %v",
			tensor.ErrInvalidRank, numOrSizeSplits.Shape())
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("split: %w: no split sizes given", tensor.ErrInvalidArgument)
	}
	if o.num >= 0 && o.num != len(sizes) {
		return nil, fmt.Errorf("split: %w: num=%d but %d pieces requested", tensor.ErrInvalidArgument, o.num, len(sizes))
	}

	// The split primitive takes interior boundaries: the running sum of the
	// sizes without its final entry.
	bounds := make([]int, 0, len(sizes))
	total := 0
	for _, s := range sizes {
		total += s
		bounds = append(bounds, total)
	}
	if total != n {
		return nil, fmt.Errorf("split: %w: sizes %v do not add up to axis size %d", tensor.ErrInvalidArgument, sizes, n)
	}
	return tensor.SplitAt(value, ax, bounds[:len(bounds)-1])
}

// splitSizes replaces a -1 entry with the length left over by the others,
// never less than zero. At most one entry may be -1; no entry may be below it.
func splitSizes(sizes []int, n int) ([]int, error) {
	out := append([]int(nil), sizes...)
	known, inferred := 0, -1
	for i, s := range sizes {
		switch {
		case s == -1 && inferred >= 0:
			return nil, fmt.Errorf("%w: sizes %v infer more than one dimension", tensor.ErrInvalidArgument, sizes)
		case s == -1:
			inferred = i
		case s < 0:
			return nil, fmt.Errorf("%w: sizes %v contain negative size %d", tensor.ErrInvalidArgument, sizes, s)
		default:
			known += s
		}
	}
	if inferred >= 0 {
		out[inferred] = max(0, n-known)
	}
	return out, nil
}

// Pad pads x by paddings[i] = {before, after} on every axis. Mode is
// matched case-insensitively.
func (l *Library) Pad(x *tensor.RawTensor, paddings [][2]int, opts ...Option) (*tensor.RawTensor, error) {
	o := apply(opts)
	return tensor.Pad(x, paddings, tensor.PadMode(strings.ToLower(o.mode)), o.constantValues)
}
