// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tfnp/tensor"
)

func TestConstructors(t *testing.T) {
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, x.DType())
	assert.Equal(t, 6.0, x.At(1, 2))

	_, err = tensor.FromSlice([]float64{1, 2}, tensor.Shape{3})
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)

	v := tensor.Vector[int32](1, 2)
	assert.Equal(t, []int32{1, 2}, tensor.Data[int32](v))
	assert.Equal(t, tensor.Shape{}, tensor.Scalar(true).Shape())
}

func TestSymbol(t *testing.T) {
	s := tensor.NewSymbol("x", tensor.Float32, tensor.Unknown, 3)
	var v tensor.Value = s
	_, concrete := v.Dims().Concrete()
	assert.False(t, concrete)
	assert.Equal(t, "(?, 3)", v.Dims().String())
	assert.Equal(t, 2, v.Dims().Rank())
}

func TestBroadcastShapes(t *testing.T) {
	got, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{4})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 4}, got)
	assert.Equal(t, "(3, 4)", got.String())

	_, err = tensor.BroadcastShapes(tensor.Shape{3}, tensor.Shape{4})
	assert.ErrorIs(t, err, tensor.ErrIncompatibleShapes)

	dt, err := tensor.ParseDataType("int64")
	require.NoError(t, err)
	assert.Equal(t, tensor.Int64, dt)
}
