package tensor

import (
	"fmt"
	"sort"
)

// Take selects slices of x along axis at the positions in indices.
// The result shape is x.shape[:axis] + indices.shape + x.shape[axis+1:].
// Negative indices count from the end of the axis.
func Take(x, indices *RawTensor, axis int) (*RawTensor, error) {
	ax, err := NormalizeAxis(axis, x.Rank())
	if err != nil {
		return nil, fmt.Errorf("take: %w", err)
	}
	if indices.dtype.IsFloat() || indices.dtype == Bool {
		return nil, fmt.Errorf("take: %w: indices must be integers, got %s", ErrInvalidArgument, indices.dtype)
	}

	n := x.shape[ax]
	idx := indices.Ints()
	for i, v := range idx {
		if v < 0 {
			v += n
		}
		if v < 0 || v >= n {
			return nil, fmt.Errorf("take: %w: index %d out of range for axis %d of size %d",
				ErrInvalidArgument, idx[i], ax, n)
		}
		idx[i] = v
	}

	outShape := make(Shape, 0, x.Rank()-1+indices.Rank())
	outShape = append(outShape, x.shape[:ax]...)
	outShape = append(outShape, indices.shape...)
	outShape = append(outShape, x.shape[ax+1:]...)

	ir := indices.Rank()
	return remap(x, outShape, func(coords []int) int {
		off := 0
		for i := 0; i < ax; i++ {
			off += coords[i] * x.stride[i]
		}
		flat := 0
		for j := 0; j < ir; j++ {
			flat += coords[ax+j] * indices.stride[j]
		}
		off += idx[flat] * x.stride[ax]
		for i := ax + 1; i < x.Rank(); i++ {
			off += coords[i-1+ir] * x.stride[i]
		}
		return off
	}), nil
}

// Where selects from x where cond is non-zero and from y elsewhere.
// All three operands broadcast against each other.
func Where(cond, x, y *RawTensor) (*RawTensor, error) {
	if x.dtype != y.dtype {
		return nil, fmt.Errorf("where: %w: x is %s but y is %s", ErrInvalidArgument, x.dtype, y.dtype)
	}
	outShape, err := BroadcastShapes(cond.shape, x.shape)
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	if outShape, err = BroadcastShapes(outShape, y.shape); err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}

	cs := BroadcastStrides(cond.shape, outShape)
	xs := BroadcastStrides(x.shape, outShape)
	ys := BroadcastStrides(y.shape, outShape)

	result := mustRaw(outShape, x.dtype)
	coords := make([]int, len(outShape))
	for i := 0; i < result.NumElements(); i++ {
		unravel(i, result.stride, coords)
		c, xo, yo := 0, 0, 0
		for d, v := range coords {
			c += v * cs[d]
			xo += v * xs[d]
			yo += v * ys[d]
		}
		if cond.Float64At(c) != 0 {
			copyElem(result, i, x, xo)
		} else {
			copyElem(result, i, y, yo)
		}
	}
	return result, nil
}

// NonZero returns the coordinates of non-zero elements as an int64 matrix of
// shape [count, rank], in row-major order.
func NonZero(cond *RawTensor) *RawTensor {
	rank := cond.Rank()
	var hits []int64
	coords := make([]int, rank)
	count := 0
	for i := 0; i < cond.NumElements(); i++ {
		if cond.Float64At(i) == 0 {
			continue
		}
		unravel(i, cond.stride, coords)
		for _, c := range coords {
			hits = append(hits, int64(c))
		}
		count++
	}
	return MustFromSlice(hits, Shape{count, rank})
}

// PadMode selects how Pad fills the border.
type PadMode string

// Padding modes, in the lower-case spelling of the array library.
const (
	PadConstant  PadMode = "constant"
	PadReflect   PadMode = "reflect"
	PadSymmetric PadMode = "symmetric"
)

// Pad extends every axis i by paddings[i][0] before and paddings[i][1] after.
func Pad(x *RawTensor, paddings [][2]int, mode PadMode, constant float64) (*RawTensor, error) {
	if len(paddings) != x.Rank() {
		return nil, fmt.Errorf("pad: %w: %d paddings for rank %d", ErrInvalidArgument, len(paddings), x.Rank())
	}
	switch mode {
	case PadConstant, PadReflect, PadSymmetric:
	default:
		return nil, fmt.Errorf("pad: %w: unknown mode %q", ErrInvalidArgument, mode)
	}

	outShape := make(Shape, x.Rank())
	for i, p := range paddings {
		if p[0] < 0 || p[1] < 0 {
			return nil, fmt.Errorf("pad: %w: negative padding %v", ErrInvalidArgument, p)
		}
		n := x.shape[i]
		if mode == PadReflect && max(p[0], p[1]) > 0 && max(p[0], p[1]) > n-1 {
			return nil, fmt.Errorf("pad: %w: reflect padding %v too large for axis of size %d", ErrInvalidArgument, p, n)
		}
		if mode == PadSymmetric && (p[0] > n || p[1] > n) {
			return nil, fmt.Errorf("pad: %w: symmetric padding %v too large for axis of size %d", ErrInvalidArgument, p, n)
		}
		outShape[i] = n + p[0] + p[1]
	}

	result := mustRaw(outShape, x.dtype)
	coords := make([]int, len(outShape))
	for i := 0; i < result.NumElements(); i++ {
		unravel(i, result.stride, coords)
		off, inside := 0, true
		for d, c := range coords {
			n := x.shape[d]
			c -= paddings[d][0]
			switch {
			case c >= 0 && c < n:
			case mode == PadReflect && c < 0:
				c = -c
			case mode == PadReflect:
				c = 2*(n-1) - c
			case mode == PadSymmetric && c < 0:
				c = -c - 1
			case mode == PadSymmetric:
				c = 2*n - 1 - c
			default:
				inside = false
			}
			off += c * x.stride[d]
		}
		if inside {
			copyElem(result, i, x, off)
		} else {
			result.SetFloat64(i, constant)
		}
	}
	return result, nil
}

// Diagonal returns the main diagonal of the trailing two axes, shape
// x.shape[:-2] + [min(rows, cols)].
func Diagonal(x *RawTensor) (*RawTensor, error) {
	if x.Rank() < 2 {
		return nil, fmt.Errorf("diagonal: %w: need rank >= 2, got %d", ErrInvalidRank, x.Rank())
	}
	r := x.Rank()
	k := min(x.shape[r-2], x.shape[r-1])
	outShape := append(x.shape[:r-2].Clone(), k)
	return remap(x, outShape, func(coords []int) int {
		off := 0
		for i := 0; i < r-2; i++ {
			off += coords[i] * x.stride[i]
		}
		d := coords[r-2]
		return off + d*x.stride[r-2] + d*x.stride[r-1]
	}), nil
}

// Triu zeros elements below the k-th diagonal of the trailing two axes.
func Triu(x *RawTensor, k int) (*RawTensor, error) {
	return maskTriangle(x, func(i, j int) bool { return j-i >= k }, "triu")
}

// Tril zeros elements above the k-th diagonal of the trailing two axes.
func Tril(x *RawTensor, k int) (*RawTensor, error) {
	return maskTriangle(x, func(i, j int) bool { return j-i <= k }, "tril")
}

func maskTriangle(x *RawTensor, keep func(i, j int) bool, op string) (*RawTensor, error) {
	if x.Rank() < 2 {
		return nil, fmt.Errorf("%s: %w: need rank >= 2, got %d", op, ErrInvalidRank, x.Rank())
	}
	rows, cols := x.shape[x.Rank()-2], x.shape[x.Rank()-1]
	result := x.Clone()
	for i := 0; i < result.NumElements(); i++ {
		col := i % cols
		row := (i / cols) % rows
		if !keep(row, col) {
			result.SetFloat64(i, 0)
		}
	}
	return result, nil
}

// SearchSide picks which insertion point SearchSorted reports for ties.
type SearchSide string

// Search sides.
const (
	SideLeft  SearchSide = "left"
	SideRight SearchSide = "right"
)

// SearchSorted finds insertion points of values in sorted, returned as int64.
//
// A rank-1 sorted sequence applies to every value. Otherwise sorted and
// values must agree on all but the last dimension and each row of values is
// searched in the matching row of sorted.
func SearchSorted(sorted, values *RawTensor, side SearchSide) (*RawTensor, error) {
	if side != SideLeft && side != SideRight {
		return nil, fmt.Errorf("searchsorted: %w: side must be left or right, got %q", ErrInvalidArgument, side)
	}
	if sorted.Rank() == 0 {
		return nil, fmt.Errorf("searchsorted: %w: sorted sequence must have rank >= 1", ErrInvalidRank)
	}

	seqLen := sorted.shape[sorted.Rank()-1]
	rowLen := values.NumElements()
	if sorted.Rank() > 1 {
		lead := sorted.shape[:sorted.Rank()-1]
		if values.Rank() != sorted.Rank() || !lead.Equal(values.shape[:values.Rank()-1]) {
			return nil, fmt.Errorf("searchsorted: %w: sorted %v vs values %v",
				ErrIncompatibleShapes, sorted.shape, values.shape)
		}
		rowLen = values.shape[values.Rank()-1]
	}

	seq := sorted.Float64s()
	vals := values.Float64s()
	out := make([]int64, len(vals))
	for i, v := range vals {
		row := 0
		if rowLen > 0 && sorted.Rank() > 1 {
			row = i / rowLen
		}
		s := seq[row*seqLen : (row+1)*seqLen]
		if side == SideLeft {
			out[i] = int64(sort.Search(len(s), func(j int) bool { return s[j] >= v }))
		} else {
			out[i] = int64(sort.Search(len(s), func(j int) bool { return s[j] > v }))
		}
	}
	return FromSlice(out, values.shape)
}
