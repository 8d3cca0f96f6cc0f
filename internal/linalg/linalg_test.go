package linalg

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tfnp/internal/backend/cpu"
	"github.com/born-ml/tfnp/internal/parallel"
	"github.com/born-ml/tfnp/internal/tensor"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func newLib() *Library {
	return New(cpu.New())
}

func TestBandPart(t *testing.T) {
	lib := newLib()

	eye, err := lib.Eye(4)
	require.NoError(t, err)
	got, err := lib.BandPart(eye, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, eye.AsFloat32(), got.AsFloat32())

	x := tensor.MustFromSlice([]float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}, tensor.Shape{3, 3})

	tests := []struct {
		name         string
		lower, upper int
		want         []float64
	}{
		{"diagonal", 0, 0, []float64{1, 0, 0, 0, 5, 0, 0, 0, 9}},
		{"lower triangle", -1, 0, []float64{1, 0, 0, 4, 5, 0, 7, 8, 9}},
		{"upper triangle", 0, -1, []float64{1, 2, 3, 0, 5, 6, 0, 0, 9}},
		{"tridiagonal", 1, 1, []float64{1, 2, 0, 4, 5, 6, 0, 8, 9}},
		{"unbounded", -1, -1, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lib.BandPart(x, tt.lower, tt.upper)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.AsFloat64())
		})
	}
}

func TestMatrixTranspose(t *testing.T) {
	lib := newLib()

	_, err := lib.MatrixTranspose(tensor.Vector[float64](1, 2, 3))
	require.ErrorIs(t, err, tensor.ErrInvalidRank)
	assert.Contains(t, err.Error(), "found 1")

	x := tensor.MustFromSlice([]float64{
		1, 2, 3,
		4, 5, 6,

		7, 8, 9,
		10, 11, 12,
	}, tensor.Shape{2, 2, 3})
	got, err := lib.MatrixTranspose(x, Conjugate(true))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3, 2}, got.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6, 7, 10, 8, 11, 9, 12}, got.AsFloat64())
}

func TestMatMul(t *testing.T) {
	lib := newLib()
	a := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})
	b := tensor.MustFromSlice([]float64{1, 0, 0, 1, 1, 1}, tensor.Shape{3, 2})

	got, err := lib.MatMul(a, b, TransposeA(true))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, got.Shape())
	assert.Equal(t, []float64{6, 8, 8, 10}, got.AsFloat64())

	got, err = lib.MatMul(a, b, AdjointB(true))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 3}, got.Shape())
	assert.Equal(t, []float64{1, 2, 3, 3, 4, 7, 5, 6, 11}, got.AsFloat64())

	_, err = lib.MatMul(a, b, AIsSparse(true))
	assert.ErrorIs(t, err, tensor.ErrUnimplemented)
	_, err = lib.MatMul(a, b, BIsSparse(true))
	assert.ErrorIs(t, err, tensor.ErrUnimplemented)
}

func TestDiagAndDiagPart(t *testing.T) {
	lib := newLib()
	d := tensor.MustFromSlice([]int32{1, 2, 3, 4}, tensor.Shape{2, 2})

	m, err := lib.Diag(d)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 2}, m.Shape())
	assert.Equal(t, []int32{1, 0, 0, 2, 3, 0, 0, 4}, m.AsInt32())

	back, err := lib.DiagPart(m)
	require.NoError(t, err)
	assert.Equal(t, d.AsInt32(), back.AsInt32())

	_, err = lib.Diag(tensor.Scalar[int32](1))
	assert.ErrorIs(t, err, tensor.ErrInvalidRank)
}

func TestSetDiagDoesNotMutate(t *testing.T) {
	lib := newLib()
	x := tensor.MustFromSlice([]float64{
		1, 2,
		3, 4,

		5, 6,
		7, 8,
	}, tensor.Shape{2, 2, 2})
	before := x.Float64s()

	got, err := lib.SetDiag(x, tensor.MustFromSlice([]float64{-1, -2, -3, -4}, tensor.Shape{2, 2}))
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 2, 3, -2, -3, 6, 7, -4}, got.AsFloat64())
	assert.Equal(t, before, x.Float64s())

	got, err = lib.SetDiag(x, tensor.Scalar[float64](0))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 3, 0, 0, 6, 7, 0}, got.AsFloat64())
	assert.Equal(t, before, x.Float64s())

	_, err = lib.SetDiag(x, tensor.Vector[float64](1, 2, 3))
	assert.ErrorIs(t, err, tensor.ErrIncompatibleShapes)
}

func TestEye(t *testing.T) {
	lib := newLib()

	x, err := lib.Eye(2)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, []float32{1, 0, 0, 1}, x.AsFloat32())

	x, err = lib.Eye(2, NumColumns(3), BatchShape(2), DType(tensor.Float64))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 3}, x.Shape())
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0, 1, 0, 0, 0, 1, 0}, x.AsFloat64())
}

func TestTriangularSolveBroadcasting(t *testing.T) {
	lib := newLib()

	tests := []struct {
		name     string
		matrix   tensor.Shape
		rhs      tensor.Shape
		want     tensor.Shape
		wantFail bool
	}{
		{"unit batch broadcasts", tensor.Shape{1, 4, 4}, tensor.Shape{5, 4, 2}, tensor.Shape{5, 4, 2}, false},
		{"rhs without batch", tensor.Shape{3, 4, 4}, tensor.Shape{4, 2}, tensor.Shape{3, 4, 2}, false},
		{"rank mismatch batches", tensor.Shape{2, 1, 4, 4}, tensor.Shape{3, 4, 1}, tensor.Shape{2, 3, 4, 1}, false},
		{"incompatible batches", tensor.Shape{3, 4, 4}, tensor.Shape{5, 4, 2}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matrix := lowerTriangular(t, tt.matrix)
			rhs := filled(t, tt.rhs)

			got, err := lib.TriangularSolve(matrix, rhs)
			if tt.wantFail {
				require.ErrorIs(t, err, tensor.ErrIncompatibleShapes)
				assert.Contains(t, err.Error(), tt.matrix.String())
				assert.Contains(t, err.Error(), tt.rhs.String())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Shape())
		})
	}
}

func TestTriangularSolveRoundTrip(t *testing.T) {
	for _, cfg := range []parallel.Config{parallel.DefaultConfig(), {Enabled: true, NumWorkers: 3, MinChunkSize: 1}} {
		lib := New(cpu.NewWithConfig(cpu.Config{Parallel: cfg}))
		matrix := lowerTriangular(t, tensor.Shape{3, 4, 4})
		rhs := filled(t, tensor.Shape{3, 4, 2})

		for _, adjoint := range []bool{false, true} {
			x, err := lib.TriangularSolve(matrix, rhs, Adjoint(adjoint))
			require.NoError(t, err)
			back, err := lib.MatMul(matrix, x, AdjointA(adjoint))
			require.NoError(t, err)
			if diff := cmp.Diff(rhs.Float64s(), back.Float64s(), approx); diff != "" {
				t.Errorf("round trip mismatch (adjoint=%v, parallel=%v) (-want +got):\n%s", adjoint, cfg.Enabled, diff)
			}
		}

		upper, err := lib.MatrixTranspose(matrix)
		require.NoError(t, err)
		x, err := lib.TriangularSolve(upper, rhs, Lower(false))
		require.NoError(t, err)
		back, err := lib.MatMul(upper, x)
		require.NoError(t, err)
		if diff := cmp.Diff(rhs.Float64s(), back.Float64s(), approx); diff != "" {
			t.Errorf("upper round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestTriangularSolveEmptyBatch(t *testing.T) {
	lib := newLib()
	matrix := tensor.MustFromSlice([]float64{}, tensor.Shape{0, 3, 3})
	rhs := filled(t, tensor.Shape{3, 2})

	got, err := lib.TriangularSolve(matrix, rhs)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{0, 3, 2}, got.Shape())
}

func TestCholeskySolve(t *testing.T) {
	lib := newLib()
	a := tensor.MustFromSlice([]float64{4, 2, 2, 3}, tensor.Shape{2, 2})
	rhs := tensor.MustFromSlice([]float64{6, 5}, tensor.Shape{2, 1})

	chol, err := lib.Cholesky(a)
	require.NoError(t, err)
	x, err := lib.CholeskySolve(chol, rhs)
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{1, 1}, x.Float64s(), approx); diff != "" {
		t.Errorf("cholesky_solve mismatch (-want +got):\n%s", diff)
	}
}

func TestDetSlogdet(t *testing.T) {
	lib := newLib()
	x := tensor.MustFromSlice([]float64{2, 0, 0, 3}, tensor.Shape{2, 2})

	det, err := lib.Det(x)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, det.Float64At(0), 1e-9)

	sign, logAbs, err := lib.Slogdet(x)
	require.NoError(t, err)
	assert.Equal(t, 1.0, sign.Float64At(0))
	assert.InDelta(t, math.Log(6), logAbs.Float64At(0), 1e-9)
}

func TestNorm(t *testing.T) {
	lib := newLib()
	x := tensor.MustFromSlice([]float64{
		3, -4,
		0, 12,
	}, tensor.Shape{2, 2})

	tests := []struct {
		name  string
		opts  []Option
		shape tensor.Shape
		want  []float64
	}{
		{"euclidean all", nil, tensor.Shape{}, []float64{13}},
		{"euclidean rows", []Option{Axis(1)}, tensor.Shape{2}, []float64{5, 12}},
		{"one-norm cols keepdims", []Option{Ord(1), Axis(0), KeepDims(true)}, tensor.Shape{1, 2}, []float64{3, 16}},
		{"inf vector", []Option{Ord(InfNorm)}, tensor.Shape{}, []float64{12}},
		{"p=3 rows", []Option{Ord(3), Axis(-1)}, tensor.Shape{2}, []float64{math.Cbrt(91), 12}},
		{"frobenius", []Option{Ord(Frobenius), Axis(0, 1)}, tensor.Shape{}, []float64{13}},
		{"matrix 1", []Option{Ord(1), Axis(-2, -1)}, tensor.Shape{}, []float64{16}},
		{"matrix inf", []Option{Ord(InfNorm), Axis(0, 1)}, tensor.Shape{}, []float64{12}},
		{"matrix inf keepdims", []Option{Ord(InfNorm), Axis(0, 1), KeepDims(true)}, tensor.Shape{1, 1}, []float64{12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lib.Norm(x, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, got.Shape())
			if diff := cmp.Diff(tt.want, got.Float64s(), approx); diff != "" {
				t.Errorf("norm mismatch (-want +got):\n%s", diff)
			}
		})
	}

	diag := tensor.MustFromSlice([]float64{3, 0, 0, -5}, tensor.Shape{1, 2, 2})
	got, err := lib.Norm(diag, Ord(2), Axis(1, 2), KeepDims(true))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 1, 1}, got.Shape())
	assert.InDelta(t, 5.0, got.Float64At(0), 1e-9)

	_, err = lib.Norm(x, Ord(Frobenius))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
	_, err = lib.Norm(x, Ord(3), Axis(0, 1))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

// lowerTriangular builds well-conditioned lower-triangular matrices of shape.
func lowerTriangular(t *testing.T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	n := shape[len(shape)-1]
	data := make([]float64, shape.NumElements())
	for i := range data {
		row, col := (i/n)%n, i%n
		switch {
		case row == col:
			data[i] = float64(n + row + 1)
		case col < row:
			data[i] = float64((i%7)+1) / 4
		}
	}
	x, err := tensor.FromFloat64s(data, shape, tensor.Float64)
	require.NoError(t, err)
	return x
}

func filled(t *testing.T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = float64(i%5) - 2
	}
	x, err := tensor.FromFloat64s(data, shape, tensor.Float64)
	require.NoError(t, err)
	return x
}
