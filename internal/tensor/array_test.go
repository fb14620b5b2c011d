package tensor_test

import (
	"errors"
	"math"
	"testing"

	"geofoundry/internal/tensor"
	"geofoundry/internal/tensor/tensortest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumericSizeMismatch(t *testing.T) {
	_, err := tensor.NewNumeric(tensor.Float32, []int{2, 4, 4}, make([]byte, 100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tensor.ErrDecode))

	var de *tensor.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 128, de.Expected)
	assert.Equal(t, 100, de.Actual)
}

func TestWordIsBitView(t *testing.T) {
	// 0x3F800000 is the bit pattern of 1.0; read as bits it must stay 1065353216.
	a, err := tensor.NewNumeric(tensor.Float32, []int{2}, tensortest.Float32s(1.0, 2.5))
	require.NoError(t, err)

	assert.Equal(t, uint32(0x3F800000), a.Word(0))
	assert.Equal(t, uint32(1065353216), a.Word(0))
	assert.Equal(t, float32(1.0), a.Float32(0))
	assert.Equal(t, math.Float32bits(2.5), a.Word(1))
}

func TestAccessorsCopy(t *testing.T) {
	a, err := tensor.NewNumeric(tensor.Uint32, []int{3}, tensortest.Uint32s(7, 8, 9))
	require.NoError(t, err)

	shape := a.Shape()
	shape[0] = 99
	b := a.Bytes()
	b[0] = 0xff
	assert.Equal(t, []int{3}, a.Shape())
	assert.Equal(t, uint32(7), a.Word(0))

	s := tensor.NewStrings([]string{"x", "y"})
	strs := s.Strings()
	strs[0] = "z"
	assert.Equal(t, "x", s.StringAt(0))
}

func TestShapeStringAndFormat(t *testing.T) {
	a, err := tensor.NewNumeric(tensor.Float32, []int{2, 4, 4}, make([]byte, 128))
	require.NoError(t, err)
	assert.Equal(t, "(2, 4, 4)", a.ShapeString())
	assert.Equal(t, 32, a.Len())
	assert.Equal(t, 64, a.RecordLen())
	assert.Len(t, a.Record(1), 64)

	s := tensor.NewStrings([]string{"A", "B", "C", "D"})
	assert.Equal(t, "(4,)", s.ShapeString())
	assert.Equal(t, tensor.Strings, s.Kind())

	i, err := tensor.NewNumeric(tensor.Int32, []int{2}, tensortest.Uint32s(5, math.MaxUint32))
	require.NoError(t, err)
	assert.Equal(t, "5", i.Format(0))
	assert.Equal(t, "-1", i.Format(1))

	f, err := tensor.NewNumeric(tensor.Float32, []int{1}, tensortest.Float32s(0.25))
	require.NoError(t, err)
	assert.Equal(t, "0.25", f.Format(0))
}

func TestChecksumTracksContent(t *testing.T) {
	a, _ := tensor.NewNumeric(tensor.Uint32, []int{2}, tensortest.Uint32s(1, 2))
	b, _ := tensor.NewNumeric(tensor.Uint32, []int{2}, tensortest.Uint32s(1, 2))
	c, _ := tensor.NewNumeric(tensor.Uint32, []int{2}, tensortest.Uint32s(2, 1))
	assert.Equal(t, a.Checksum(), b.Checksum())
	assert.NotEqual(t, a.Checksum(), c.Checksum())
}

func TestWordOfMatchesArrayWord(t *testing.T) {
	raw := tensortest.Uint32s(0x3F800000, 42)
	a, err := tensor.NewNumeric(tensor.Float32, []int{2}, raw)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		assert.Equal(t, a.Word(i), tensor.WordOf(raw, i))
	}
	assert.Equal(t, uint32(42), tensor.WordOf(raw, 1))
}
