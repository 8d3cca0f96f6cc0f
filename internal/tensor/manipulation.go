package tensor

import "fmt"

// remap builds a tensor of outShape whose element at each coordinate is copied
// from the flat index of x returned by src. Every structural op funnels
// through here, so they work for any dtype without type switches.
func remap(x *RawTensor, outShape Shape, src func(coords []int) int) *RawTensor {
	result := mustRaw(outShape, x.dtype)
	n := result.NumElements()
	if n == 0 {
		return result
	}
	coords := make([]int, len(outShape))
	for i := 0; i < n; i++ {
		unravel(i, result.stride, coords)
		copyElem(result, i, x, src(coords))
	}
	return result
}

// Reshape returns a tensor with the same elements and a new shape.
// A single -1 dimension is inferred from the element count.
func Reshape(x *RawTensor, newShape Shape) (*RawTensor, error) {
	if x == nil {
		return nil, fmt.Errorf("reshape: %w: input tensor is nil", ErrInvalidArgument)
	}

	total := x.NumElements()
	inferIdx := -1
	product := 1
	for i, dim := range newShape {
		switch {
		case dim == -1:
			if inferIdx >= 0 {
				return nil, fmt.Errorf("reshape: %w: can only have one -1 dimension", ErrInvalidArgument)
			}
			inferIdx = i
		case dim < 0:
			return nil, fmt.Errorf("reshape: %w: dimensions must be non-negative, got %d", ErrInvalidArgument, dim)
		default:
			product *= dim
		}
	}

	actual := newShape.Clone()
	if inferIdx >= 0 {
		if product == 0 || total%product != 0 {
			return nil, fmt.Errorf("reshape: %w: cannot infer dimension for shape %v from %d elements",
				ErrInvalidArgument, newShape, total)
		}
		actual[inferIdx] = total / product
	}

	if actual.NumElements() != total {
		return nil, fmt.Errorf("reshape: %w: cannot reshape %v (%d elements) to %v",
			ErrInvalidArgument, x.shape, total, actual)
	}

	result := x.Clone()
	result.shape = actual
	result.stride = actual.ComputeStrides()
	return result, nil
}

// Transpose permutes dimensions. With no perm the dimensions are reversed.
func Transpose(x *RawTensor, perm ...int) (*RawTensor, error) {
	ndim := x.Rank()
	if len(perm) == 0 {
		perm = make([]int, ndim)
		for i := range perm {
			perm[i] = ndim - 1 - i
		}
	}
	if len(perm) != ndim {
		return nil, fmt.Errorf("transpose: %w: perm %v does not match rank %d", ErrInvalidArgument, perm, ndim)
	}

	axes := make([]int, ndim)
	seen := make([]bool, ndim)
	newShape := make(Shape, ndim)
	for i, ax := range perm {
		a, err := NormalizeAxis(ax, ndim)
		if err != nil {
			return nil, fmt.Errorf("transpose: %w", err)
		}
		if seen[a] {
			return nil, fmt.Errorf("transpose: %w: duplicate axis %d in perm %v", ErrInvalidArgument, ax, perm)
		}
		seen[a] = true
		axes[i] = a
		newShape[i] = x.shape[a]
	}

	return remap(x, newShape, func(coords []int) int {
		off := 0
		for i, a := range axes {
			off += coords[i] * x.stride[a]
		}
		return off
	}), nil
}

// SwapAxes exchanges two axes.
func SwapAxes(x *RawTensor, a, b int) (*RawTensor, error) {
	a, err := NormalizeAxis(a, x.Rank())
	if err != nil {
		return nil, fmt.Errorf("swapaxes: %w", err)
	}
	b, err = NormalizeAxis(b, x.Rank())
	if err != nil {
		return nil, fmt.Errorf("swapaxes: %w", err)
	}
	perm := make([]int, x.Rank())
	for i := range perm {
		perm[i] = i
	}
	perm[a], perm[b] = perm[b], perm[a]
	return Transpose(x, perm...)
}

// BroadcastTo expands x to shape following broadcasting rules.
func BroadcastTo(x *RawTensor, shape Shape) (*RawTensor, error) {
	out, err := BroadcastShapes(x.shape, shape)
	if err != nil || !out.Equal(shape) {
		return nil, fmt.Errorf("broadcast_to: %w: cannot broadcast %v to %v", ErrIncompatibleShapes, x.shape, shape)
	}
	if x.shape.Equal(shape) {
		return x.Clone(), nil
	}
	strides := BroadcastStrides(x.shape, shape)
	return remap(x, shape, func(coords []int) int {
		off := 0
		for i, c := range coords {
			off += c * strides[i]
		}
		return off
	}), nil
}

// BroadcastStrides returns strides of in aligned to out, with zero stride on
// broadcast dimensions. len(result) == len(out).
func BroadcastStrides(in, out Shape) []int {
	inStrides := in.ComputeStrides()
	strides := make([]int, len(out))
	offset := len(out) - len(in)
	for i := range in {
		if in[i] != 1 {
			strides[offset+i] = inStrides[i]
		}
	}
	return strides
}

// Concat joins tensors along an existing axis.
func Concat(xs []*RawTensor, axis int) (*RawTensor, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("concat: %w: need at least one tensor", ErrInvalidArgument)
	}
	first := xs[0]
	ax, err := NormalizeAxis(axis, first.Rank())
	if err != nil {
		return nil, fmt.Errorf("concat: %w", err)
	}

	outShape := first.shape.Clone()
	outShape[ax] = 0
	for _, x := range xs {
		if x.dtype != first.dtype {
			return nil, fmt.Errorf("concat: %w: mixed dtypes %s and %s", ErrInvalidArgument, first.dtype, x.dtype)
		}
		if x.Rank() != first.Rank() {
			return nil, fmt.Errorf("concat: %w: ranks differ, %v vs %v", ErrIncompatibleShapes, first.shape, x.shape)
		}
		for d := range x.shape {
			if d != ax && x.shape[d] != first.shape[d] {
				return nil, fmt.Errorf("concat: %w: %v vs %v", ErrIncompatibleShapes, first.shape, x.shape)
			}
		}
		outShape[ax] += x.shape[ax]
	}

	result := mustRaw(outShape, first.dtype)
	outer := Shape(outShape[:ax]).NumElements()
	inner := Shape(outShape[ax+1:]).NumElements() * first.dtype.Size()
	dst := 0
	for o := 0; o < outer; o++ {
		for _, x := range xs {
			chunk := x.shape[ax] * inner
			copy(result.data[dst:dst+chunk], x.data[o*chunk:(o+1)*chunk])
			dst += chunk
		}
	}
	return result, nil
}

// Stack joins tensors of identical shape along a new axis.
func Stack(xs []*RawTensor, axis int) (*RawTensor, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("stack: %w: need at least one tensor", ErrInvalidArgument)
	}
	expanded := make([]*RawTensor, len(xs))
	for i, x := range xs {
		if !x.shape.Equal(xs[0].shape) {
			return nil, fmt.Errorf("stack: %w: %v vs %v", ErrIncompatibleShapes, xs[0].shape, x.shape)
		}
		e, err := ExpandDims(x, axis)
		if err != nil {
			return nil, fmt.Errorf("stack: %w", err)
		}
		expanded[i] = e
	}
	return Concat(expanded, axis)
}

// ExpandDims inserts a size-1 dimension at axis, which may range over [-rank-1, rank].
func ExpandDims(x *RawTensor, axis int) (*RawTensor, error) {
	ax, err := NormalizeAxis(axis, x.Rank()+1)
	if err != nil {
		return nil, fmt.Errorf("expand_dims: %w", err)
	}
	newShape := make(Shape, 0, x.Rank()+1)
	newShape = append(newShape, x.shape[:ax]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, x.shape[ax:]...)
	return Reshape(x, newShape)
}

// Squeeze removes size-1 dimensions. With no axes all of them are removed.
func Squeeze(x *RawTensor, axes ...int) (*RawTensor, error) {
	drop := make([]bool, x.Rank())
	if len(axes) == 0 {
		for i, d := range x.shape {
			drop[i] = d == 1
		}
	}
	for _, a := range axes {
		ax, err := NormalizeAxis(a, x.Rank())
		if err != nil {
			return nil, fmt.Errorf("squeeze: %w", err)
		}
		if x.shape[ax] != 1 {
			return nil, fmt.Errorf("squeeze: %w: cannot squeeze axis %d of size %d", ErrInvalidArgument, a, x.shape[ax])
		}
		drop[ax] = true
	}
	newShape := make(Shape, 0, x.Rank())
	for i, d := range x.shape {
		if !drop[i] {
			newShape = append(newShape, d)
		}
	}
	return Reshape(x, newShape)
}

// SliceAxis returns x[..., start:stop, ...] along axis. Bounds are clamped.
func SliceAxis(x *RawTensor, axis, start, stop int) (*RawTensor, error) {
	ax, err := NormalizeAxis(axis, x.Rank())
	if err != nil {
		return nil, fmt.Errorf("slice: %w", err)
	}
	starts := make([]int, x.Rank())
	stops := x.shape.Clone()
	starts[ax], stops[ax] = start, stop
	return SliceRanges(x, starts, stops)
}

// SliceRanges applies [starts[i], stops[i]) on every axis in one pass.
// Bounds are clamped to the axis; an empty range yields a zero-sized axis.
func SliceRanges(x *RawTensor, starts, stops []int) (*RawTensor, error) {
	if len(starts) != x.Rank() || len(stops) != x.Rank() {
		return nil, fmt.Errorf("slice: %w: need %d starts and stops, got %d and %d",
			ErrInvalidArgument, x.Rank(), len(starts), len(stops))
	}
	lo := make([]int, x.Rank())
	newShape := make(Shape, x.Rank())
	for i, n := range x.shape {
		s := min(max(starts[i], 0), n)
		e := min(max(stops[i], s), n)
		lo[i] = s
		newShape[i] = e - s
	}
	return remap(x, newShape, func(coords []int) int {
		off := 0
		for i, c := range coords {
			off += (c + lo[i]) * x.stride[i]
		}
		return off
	}), nil
}

// SplitAt cuts x along axis at the given interior indices, producing
// len(indices)+1 pieces. Indices past the end yield empty pieces.
func SplitAt(x *RawTensor, axis int, indices []int) ([]*RawTensor, error) {
	ax, err := NormalizeAxis(axis, x.Rank())
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	bounds := make([]int, 0, len(indices)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, indices...)
	bounds = append(bounds, x.shape[ax])

	pieces := make([]*RawTensor, 0, len(indices)+1)
	for i := 0; i+1 < len(bounds); i++ {
		p, err := SliceAxis(x, ax, bounds[i], bounds[i+1])
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, p)
	}
	return pieces, nil
}

// Tile repeats x along each axis. Shorter multiples are padded with leading
// ones; a longer multiples promotes x with leading size-1 dimensions.
func Tile(x *RawTensor, multiples []int) (*RawTensor, error) {
	rank := max(len(multiples), x.Rank())
	reps := make([]int, rank)
	inShape := make(Shape, rank)
	for i := range reps {
		reps[i], inShape[i] = 1, 1
	}
	copy(reps[rank-len(multiples):], multiples)
	copy(inShape[rank-x.Rank():], x.shape)

	outShape := make(Shape, rank)
	for i := range outShape {
		if reps[i] < 0 {
			return nil, fmt.Errorf("tile: %w: negative multiple %d", ErrInvalidArgument, reps[i])
		}
		outShape[i] = inShape[i] * reps[i]
	}
	inStrides := inShape.ComputeStrides()
	return remap(x, outShape, func(coords []int) int {
		off := 0
		for i, c := range coords {
			off += (c % inShape[i]) * inStrides[i]
		}
		return off
	}), nil
}

// Flip reverses the order of elements along axis.
func Flip(x *RawTensor, axis int) (*RawTensor, error) {
	ax, err := NormalizeAxis(axis, x.Rank())
	if err != nil {
		return nil, fmt.Errorf("flip: %w", err)
	}
	return remap(x, x.shape, func(coords []int) int {
		off := 0
		for i, c := range coords {
			if i == ax {
				c = x.shape[i] - 1 - c
			}
			off += c * x.stride[i]
		}
		return off
	}), nil
}

// Roll shifts elements along the given axes with wrap-around. A single shift
// applies to every axis. With no axes the flattened array is rolled.
func Roll(x *RawTensor, shift, axes []int) (*RawTensor, error) {
	if len(axes) == 0 {
		if len(shift) != 1 {
			return nil, fmt.Errorf("roll: %w: need exactly one shift without axes", ErrInvalidArgument)
		}
		flat, err := Reshape(x, Shape{x.NumElements()})
		if err != nil {
			return nil, err
		}
		rolled, err := Roll(flat, shift, []int{0})
		if err != nil {
			return nil, err
		}
		return Reshape(rolled, x.shape)
	}
	if len(shift) != 1 && len(shift) != len(axes) {
		return nil, fmt.Errorf("roll: %w: %d shifts for %d axes", ErrInvalidArgument, len(shift), len(axes))
	}

	total := make([]int, x.Rank())
	for i, a := range axes {
		ax, err := NormalizeAxis(a, x.Rank())
		if err != nil {
			return nil, fmt.Errorf("roll: %w", err)
		}
		s := shift[0]
		if len(shift) > 1 {
			s = shift[i]
		}
		total[ax] += s
	}
	return remap(x, x.shape, func(coords []int) int {
		off := 0
		for i, c := range coords {
			if n := x.shape[i]; n > 0 && total[i] != 0 {
				c = ((c-total[i])%n + n) % n
			}
			off += c * x.stride[i]
		}
		return off
	}), nil
}
