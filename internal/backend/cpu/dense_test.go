package cpu

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tfnp/internal/parallel"
	"github.com/born-ml/tfnp/internal/tensor"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestMatMul(t *testing.T) {
	backend := New()
	a := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := tensor.MustFromSlice([]float64{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	got, err := backend.MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, got.Shape())
	assert.Equal(t, []float64{58, 64, 139, 154}, got.AsFloat64())
}

func TestMatMulBroadcastsBatch(t *testing.T) {
	backend := NewWithConfig(Config{Parallel: parallel.Config{Enabled: true, NumWorkers: 2, MinChunkSize: 1}})
	eye := tensor.MustFromSlice([]float64{1, 0, 0, 1}, tensor.Shape{1, 2, 2})
	b := tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2, 2})

	got, err := backend.MatMul(eye, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2, 2}, got.Shape())
	assert.Equal(t, b.Float64s(), got.Float64s())

	_, err = backend.MatMul(tensor.Vector[float64](1, 2), b)
	assert.ErrorIs(t, err, tensor.ErrInvalidRank)
}

func TestSolveTriangular(t *testing.T) {
	backend := New()
	// Lower triangle holds [[2, 0], [1, 4]]; the upper entry must be ignored.
	a := tensor.MustFromSlice([]float64{2, 99, 1, 4}, tensor.Shape{2, 2})
	b := tensor.MustFromSlice([]float64{2, 9}, tensor.Shape{2, 1})

	x, err := backend.SolveTriangular(a, b, true, false)
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{1, 2}, x.Float64s(), approx); diff != "" {
		t.Errorf("lower solve mismatch (-want +got):\n%s", diff)
	}

	// Adjoint: [[2, 1], [0, 4]] x = [5, 8] -> x = [1.5, 2].
	x, err = backend.SolveTriangular(a, tensor.MustFromSlice([]float64{5, 8}, tensor.Shape{2, 1}), true, true)
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{1.5, 2}, x.Float64s(), approx); diff != "" {
		t.Errorf("adjoint solve mismatch (-want +got):\n%s", diff)
	}

	_, err = backend.SolveTriangular(a, tensor.MustFromSlice([]float64{1, 2, 3}, tensor.Shape{3, 1}), true, false)
	assert.ErrorIs(t, err, tensor.ErrIncompatibleShapes)
}

func TestCholesky(t *testing.T) {
	backend := New()
	x := tensor.MustFromSlice([]float64{4, 2, 2, 3}, tensor.Shape{2, 2})

	l, err := backend.Cholesky(x)
	require.NoError(t, err)
	want := []float64{2, 0, 1, math.Sqrt(2)}
	if diff := cmp.Diff(want, l.Float64s(), approx); diff != "" {
		t.Errorf("cholesky mismatch (-want +got):\n%s", diff)
	}

	_, err = backend.Cholesky(tensor.MustFromSlice([]float64{1, 2, 2, 1}, tensor.Shape{2, 2}))
	assert.ErrorIs(t, err, tensor.ErrNotPositiveDefinite)

	// Integer input keeps the fractional part of the factor.
	li, err := backend.Cholesky(tensor.MustFromSlice([]int32{4, 2, 2, 3}, tensor.Shape{2, 2}))
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, li.DType())
	if diff := cmp.Diff(want, li.Float64s(), approx); diff != "" {
		t.Errorf("integer cholesky mismatch (-want +got):\n%s", diff)
	}
}

func TestDetAndSlogdet(t *testing.T) {
	backend := New()
	x := tensor.MustFromSlice([]float64{
		1, 2, 3, 4, // det -2
		2, 0, 0, 3, // det 6
	}, tensor.Shape{2, 2, 2})

	det, err := backend.Det(x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2}, det.Shape())
	assert.InDeltaSlice(t, []float64{-2, 6}, det.Float64s(), 1e-9)

	sign, logAbs, err := backend.Slogdet(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 1}, sign.Float64s())
	assert.InDeltaSlice(t, []float64{math.Log(2), math.Log(6)}, logAbs.Float64s(), 1e-9)

	sign, logAbs, err = backend.Slogdet(tensor.MustFromSlice([]float64{1, 2, 2, 4}, tensor.Shape{2, 2}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, sign.Float64At(0))
	assert.True(t, math.IsInf(logAbs.Float64At(0), -1))
}

func TestDetParallelMatchesSequential(t *testing.T) {
	const batch = 32
	data := make([]float64, batch*4)
	for i := 0; i < batch; i++ {
		copy(data[i*4:], []float64{float64(i + 1), 1, 2, 3}) // det 3(i+1) - 2
	}
	x := tensor.MustFromSlice(data, tensor.Shape{batch, 2, 2})

	seq := New()
	par := NewWithConfig(Config{Parallel: parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}})

	want, err := seq.Det(x)
	require.NoError(t, err)
	got, err := par.Det(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want.Float64s(), got.Float64s(), 1e-12)
	assert.InDelta(t, 1.0, want.Float64At(0), 1e-9)
	assert.InDelta(t, 3.0*batch-2, want.Float64At(batch-1), 1e-9)

	wantSign, wantLog, err := seq.Slogdet(x)
	require.NoError(t, err)
	gotSign, gotLog, err := par.Slogdet(x)
	require.NoError(t, err)
	assert.Equal(t, wantSign.Float64s(), gotSign.Float64s())
	assert.InDeltaSlice(t, wantLog.Float64s(), gotLog.Float64s(), 1e-12)
}

func TestSpectralNorm(t *testing.T) {
	backend := New()
	x := tensor.MustFromSlice([]float64{3, 0, 0, -5}, tensor.Shape{2, 2})

	got, err := backend.SpectralNorm(x)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got.Float64At(0), 1e-9)
}
