package export

import (
	"bytes"
	"testing"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofoundry/internal/foundry"
)

func TestWriteBoundaryUsage(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rows := []foundry.BoundaryUsage{
		{Boundary: 1, Count: 1, Name: "B"},
		{Boundary: 2, Count: 1, Name: "C"},
		{Boundary: 3, Count: 3, Name: "D"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBoundaryUsage(&buf, mem, rows))

	r, err := ipc.NewReader(&buf, ipc.WithAllocator(mem))
	require.NoError(t, err)
	defer r.Release()

	assert.True(t, r.Schema().Equal(BoundaryUsageSchema))
	require.True(t, r.Next())
	rec := r.Record()
	require.EqualValues(t, 3, rec.NumRows())

	ids := rec.Column(0).(*array.Uint32)
	counts := rec.Column(1).(*array.Int64)
	names := rec.Column(2).(*array.String)
	assert.Equal(t, []uint32{1, 2, 3}, ids.Uint32Values())
	assert.Equal(t, []int64{1, 1, 3}, counts.Int64Values())
	assert.Equal(t, "D", names.Value(2))
	assert.False(t, r.Next())
}

func TestBoundaryUsageRecordEmpty(t *testing.T) {
	rec := BoundaryUsageRecord(memory.DefaultAllocator, nil)
	defer rec.Release()
	assert.EqualValues(t, 0, rec.NumRows())
	assert.EqualValues(t, 3, rec.NumCols())
}
