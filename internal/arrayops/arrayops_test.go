package arrayops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tfnp/internal/backend/cpu"
	"github.com/born-ml/tfnp/internal/linalg"
	"github.com/born-ml/tfnp/internal/tensor"
)

func newLib() *Library {
	return New(cpu.New(), nil)
}

func TestOneHot(t *testing.T) {
	lib := newLib()
	indices := tensor.Vector[int32](0, 2)

	got, err := lib.OneHot(indices, 3)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, got.Shape())
	assert.Equal(t, tensor.Float32, got.DType())
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1}, got.AsFloat32())

	got, err = lib.OneHot(indices, 3, OffValue(-1))
	require.NoError(t, err)
	assert.Equal(t, []float32{1, -1, -1, -1, -1, 1}, got.AsFloat32())

	got, err = lib.OneHot(indices, 3, Axis(0), DType(tensor.Int32))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, got.Shape())
	assert.Equal(t, []int32{1, 0, 0, 0, 0, 1}, got.AsInt32())

	// Float indices within tolerance still hit; out-of-range indices never do.
	got, err = lib.OneHot(tensor.Vector[float64](1.02, 5), 2, OnValue(7))
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 7, 0, 0}, got.AsFloat32())
}

func TestOneHotMovesDepthAxis(t *testing.T) {
	lib := newLib()
	indices := tensor.MustFromSlice([]int32{0, 1, 2, 0, 1, 2}, tensor.Shape{2, 3})

	got, err := lib.OneHot(indices, 4, Axis(1))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 4, 3}, got.Shape())
	// got[b, d, i] == 1 iff indices[b, i] == d.
	assert.Equal(t, 1.0, got.At(1, 2, 2))
	assert.Equal(t, 0.0, got.At(1, 2, 1))
	assert.Equal(t, 0.0, got.At(0, 3, 0))
}

func TestSplit(t *testing.T) {
	lib := newLib()
	x := tensor.Vector[float64](1, 2, 3, 4, 5)

	pieces, err := lib.Split(x, tensor.Vector[int32](2, -1, 1))
	require.NoError(t, err)
	require.Len(t, pieces, 3)
	assert.Equal(t, []float64{1, 2}, pieces[0].AsFloat64())
	assert.Equal(t, []float64{3, 4}, pieces[1].AsFloat64())
	assert.Equal(t, []float64{5}, pieces[2].AsFloat64())

	m := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	pieces, err = lib.Split(m, tensor.Scalar[int32](3), Axis(1), Num(3))
	require.NoError(t, err)
	require.Len(t, pieces, 3)
	assert.Equal(t, tensor.Shape{2, 1}, pieces[2].Shape())
	assert.Equal(t, []float64{3, 6}, pieces[2].AsFloat64())

	_, err = lib.Split(x, tensor.Scalar[int32](2))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
	_, err = lib.Split(x, tensor.Vector[int32](2, 2))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)

	// Sizes that sum to the axis length are still rejected when malformed.
	_, err = lib.Split(x, tensor.Vector[int32](7, -2))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
	_, err = lib.Split(x, tensor.Vector[int32](5, -1, -1))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestSplitSizes(t *testing.T) {
	tests := []struct {
		sizes []int
		want  []int
	}{
		{[]int{2, -1, 1}, []int{2, 2, 1}},
		{[]int{4, -1, 3}, []int{4, 0, 3}}, // remainder is clamped at zero
		{[]int{1, 4}, []int{1, 4}},
	}
	for _, tt := range tests {
		got, err := splitSizes(tt.sizes, 5)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range [][]int{{7, -2}, {5, -1, -1}, {-3}} {
		_, err := splitSizes(bad, 5)
		assert.ErrorIs(t, err, tensor.ErrInvalidArgument, "%v", bad)
	}
}

func TestSlice(t *testing.T) {
	lib := newLib()
	x := tensor.MustFromSlice([]int32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, tensor.Shape{3, 3})

	got, err := lib.Slice(x, []int{1, 0}, []int{-1, 2})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, got.Shape())
	assert.Equal(t, []int32{4, 5, 7, 8}, got.AsInt32())

	_, err = lib.Slice(x, []int{2, 0}, []int{2, 1})
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestGather(t *testing.T) {
	lib := newLib()
	params := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})

	got, err := lib.Gather(params, tensor.Vector[int32](2, 0))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 1, 2}, got.AsFloat64())

	got, err = lib.Gather(params, tensor.Vector[int64](1), Axis(1))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 1}, got.Shape())
	assert.Equal(t, []float64{2, 4, 6}, got.AsFloat64())

	_, err = lib.Gather(params, tensor.Vector[int32](0), ValidateIndices(true))
	assert.ErrorIs(t, err, tensor.ErrUnimplemented)
	_, err = lib.Gather(params, tensor.Vector[int32](0), BatchDims(1))
	assert.ErrorIs(t, err, tensor.ErrUnimplemented)
	_, err = lib.GatherND(params, tensor.Vector[int32](0))
	assert.ErrorIs(t, err, tensor.ErrUnimplemented)
}

func TestPadIsCaseInsensitive(t *testing.T) {
	lib := newLib()
	x := tensor.Vector[float64](1, 2, 3)

	for _, mode := range []string{"REFLECT", "reflect", "Reflect"} {
		got, err := lib.Pad(x, [][2]int{{1, 1}}, Mode(mode))
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 1, 2, 3, 2}, got.AsFloat64())
	}

	got, err := lib.Pad(x, [][2]int{{2, 0}}, ConstantValues(9))
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 9, 1, 2, 3}, got.AsFloat64())

	_, err = lib.Pad(x, [][2]int{{1, 1}}, Mode("wrap"))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestReverse(t *testing.T) {
	lib := newLib()
	x := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	got, err := lib.Reverse(x, tensor.Scalar[int32](1))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2, 1, 6, 5, 4}, got.AsFloat64())

	got, err = lib.Reverse(x, tensor.Vector[int32](0, -1))
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 5, 4, 3, 2, 1}, got.AsFloat64())
}

func TestRoll(t *testing.T) {
	lib := newLib()
	x := tensor.Vector[int32](0, 1, 2, 3, 4)

	got, err := lib.Roll(x, tensor.Scalar[int32](2), tensor.Scalar[int32](0))
	require.NoError(t, err)
	assert.Equal(t, []int32{3, 4, 0, 1, 2}, got.AsInt32())

	_, err = lib.Roll(x, tensor.Vector[int32](1, 2), tensor.Scalar[int32](0))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestSearchSorted(t *testing.T) {
	lib := newLib()
	sorted := tensor.Vector[float64](1, 3, 3, 5)
	values := tensor.Vector[float64](0, 3, 6)

	got, err := lib.SearchSorted(sorted, values)
	require.NoError(t, err)
	assert.Equal(t, tensor.Int32, got.DType())
	assert.Equal(t, []int32{0, 1, 4}, got.AsInt32())

	got, err = lib.SearchSorted(sorted, values, Side("right"), OutType(tensor.Int64))
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 3, 4}, got.AsInt64())

	_, err = lib.SearchSorted(sorted, values, OutType(tensor.Float32))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestUnstackAndStack(t *testing.T) {
	lib := newLib()
	x := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	cols, err := lib.Unstack(x, Axis(1))
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, tensor.Shape{2}, cols[0].Shape())
	assert.Equal(t, []float64{2, 5}, cols[1].AsFloat64())

	back, err := lib.Stack(cols, Axis(1))
	require.NoError(t, err)
	assert.Equal(t, x.AsFloat64(), back.AsFloat64())

	_, err = lib.Unstack(x, Num(3))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestTransposeAndReshape(t *testing.T) {
	lib := newLib()
	x := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	got, err := lib.Transpose(x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, got.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, got.AsFloat64())

	got, err = lib.Reshape(x, []int{-1})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{6}, got.Shape())

	got, err = lib.ExpandDims(x, 0)
	require.NoError(t, err)
	got, err = lib.Squeeze(got)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, got.Shape())

	got, err = lib.Tile(x, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3, 4, 5, 6, 4, 5, 6}, got.AsFloat64())

	got, err = lib.Concat([]*tensor.RawTensor{x, x}, 0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 3}, got.Shape())
}

func TestWhere(t *testing.T) {
	lib := newLib()
	cond := tensor.MustFromSlice([]bool{true, false, false, true}, tensor.Shape{2, 2})

	got, err := lib.Where(cond, tensor.Scalar[float64](1), tensor.Scalar[float64](0))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 1}, got.AsFloat64())

	coords, err := lib.Where(cond, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, coords.Shape())
	assert.Equal(t, []int64{0, 0, 1, 1}, coords.AsInt64())

	_, err = lib.Where(cond, tensor.Scalar[float64](1), nil)
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestCreation(t *testing.T) {
	lib := newLib()

	z, err := lib.Zeros([]int{2, 2})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, z.DType())
	assert.Equal(t, []float32{0, 0, 0, 0}, z.AsFloat32())

	o, err := lib.Ones([]int{3}, DType(tensor.Int64))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 1, 1}, o.AsInt64())

	f, err := lib.Fill([]int{2}, tensor.Scalar[int32](7))
	require.NoError(t, err)
	assert.Equal(t, []int32{7, 7}, f.AsInt32())

	r, err := lib.Range(4)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 2, 3}, r.AsInt32())

	r, err = lib.Range(1, Limit(2), Delta(0.25))
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1.25, 1.5, 1.75}, r.AsFloat32())

	ls, err := lib.Linspace(tensor.Scalar[float64](0), tensor.Scalar[float64](1), 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, ls.AsFloat64())
}

func TestMeshgrid(t *testing.T) {
	lib := newLib()
	x := tensor.Vector[int32](1, 2, 3)
	y := tensor.Vector[int32](4, 5)

	grids, err := lib.Meshgrid([]*tensor.RawTensor{x, y})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, grids[0].Shape())
	assert.Equal(t, []int32{1, 2, 3, 1, 2, 3}, grids[0].AsInt32())
	assert.Equal(t, []int32{4, 4, 4, 5, 5, 5}, grids[1].AsInt32())

	grids, err = lib.Meshgrid([]*tensor.RawTensor{x, y}, Indexing("ij"))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, grids[0].Shape())
	assert.Equal(t, []int32{1, 1, 2, 2, 3, 3}, grids[0].AsInt32())
}

func TestNormDelegates(t *testing.T) {
	lib := newLib()
	got, err := lib.Norm(tensor.Vector[float64](3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got.Float64At(0), 1e-12)

	got, err = lib.Norm(tensor.Vector[float64](3, -4), linalg.Ord(1))
	require.NoError(t, err)
	assert.InDelta(t, 7.0, got.Float64At(0), 1e-12)
}
