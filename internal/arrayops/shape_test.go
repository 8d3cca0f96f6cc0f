package arrayops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tfnp/internal/backend/cpu"
	"github.com/born-ml/tfnp/internal/tensor"
)

// recordingBuilder counts delegations to the symbolic path.
type recordingBuilder struct {
	Placeholders
	calls []string
}

func (b *recordingBuilder) Shape(x tensor.Value, outType tensor.DataType) tensor.Value {
	b.calls = append(b.calls, "shape")
	return b.Placeholders.Shape(x, outType)
}

func (b *recordingBuilder) Fill(dims tensor.Dims, value float64, dtype tensor.DataType) tensor.Value {
	b.calls = append(b.calls, "fill")
	return b.Placeholders.Fill(dims, value, dtype)
}

func TestShapeConcrete(t *testing.T) {
	lib := newLib()
	x := tensor.MustFromSlice(make([]float32, 6), tensor.Shape{2, 3})

	s, err := lib.Shape(x)
	require.NoError(t, err)
	raw, ok := s.(*tensor.RawTensor)
	require.True(t, ok)
	assert.Equal(t, []int32{2, 3}, raw.AsInt32())

	n, err := lib.Size(x, OutType(tensor.Int64))
	require.NoError(t, err)
	assert.Equal(t, []int64{6}, n.(*tensor.RawTensor).AsInt64())

	r, err := lib.Rank(x)
	require.NoError(t, err)
	assert.Equal(t, []int32{2}, r.AsInt32())

	_, err = lib.Shape(x, OutType(tensor.Float32))
	assert.ErrorIs(t, err, tensor.ErrInvalidArgument)
}

func TestShapeSymbolic(t *testing.T) {
	builder := &recordingBuilder{}
	lib := New(cpu.New(), builder)
	x := tensor.NewSymbol("x", tensor.Float64, tensor.Unknown, 3)

	s, err := lib.Shape(x)
	require.NoError(t, err)
	sym, ok := s.(*tensor.Symbol)
	require.True(t, ok)
	assert.Equal(t, tensor.Int32, sym.DType())
	shape, concrete := sym.Dims().Concrete()
	require.True(t, concrete)
	assert.Equal(t, tensor.Shape{2}, shape)

	r, err := lib.Rank(x)
	require.NoError(t, err)
	assert.Equal(t, []int32{2}, r.AsInt32())

	n, err := lib.Size(x)
	require.NoError(t, err)
	_, ok = n.(*tensor.Symbol)
	assert.True(t, ok)

	assert.Equal(t, []string{"shape"}, builder.calls)
}

func TestFillLike(t *testing.T) {
	builder := &recordingBuilder{}
	lib := New(cpu.New(), builder)

	x := tensor.MustFromSlice([]int32{5, 6, 7}, tensor.Shape{3})
	ones, err := lib.OnesLike(x)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 1, 1}, ones.(*tensor.RawTensor).AsInt32())

	zeros, err := lib.ZerosLike(x, DType(tensor.Float64))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, zeros.(*tensor.RawTensor).AsFloat64())
	assert.Empty(t, builder.calls, "concrete shapes never reach the builder")

	sym := tensor.NewSymbol("y", tensor.Float32, 2, tensor.Unknown)
	out, err := lib.OnesLike(sym)
	require.NoError(t, err)
	assert.Equal(t, []string{"fill"}, builder.calls)
	assert.Equal(t, tensor.Float32, out.DType())
	require.NotNil(t, out.Dims().Symbolic())
	assert.Equal(t, []int{2, tensor.Unknown}, out.Dims().Symbolic().Dims)
}
