// Package export renders foundry diagnostics in the Arrow columnar format,
// for analysis consumers that read record batches rather than text.
package export

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"geofoundry/internal/foundry"
)

// BoundaryUsageSchema is the schema of the boundary usage record batch.
var BoundaryUsageSchema = arrow.NewSchema([]arrow.Field{
	{Name: "boundary", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "count", Type: arrow.PrimitiveTypes.Int64},
	{Name: "name", Type: arrow.BinaryTypes.String},
}, nil)

// BoundaryUsageRecord builds one record batch from histogram rows. The
// caller must Release it.
func BoundaryUsageRecord(mem memory.Allocator, rows []foundry.BoundaryUsage) arrow.Record {
	b := array.NewRecordBuilder(mem, BoundaryUsageSchema)
	defer b.Release()

	ids := b.Field(0).(*array.Uint32Builder)
	counts := b.Field(1).(*array.Int64Builder)
	names := b.Field(2).(*array.StringBuilder)
	ids.Reserve(len(rows))
	counts.Reserve(len(rows))
	names.Reserve(len(rows))
	for _, r := range rows {
		ids.Append(r.Boundary)
		counts.Append(int64(r.Count))
		names.Append(r.Name)
	}
	return b.NewRecord()
}

// WriteBoundaryUsage writes rows to w as an Arrow IPC stream.
func WriteBoundaryUsage(w io.Writer, mem memory.Allocator, rows []foundry.BoundaryUsage) error {
	rec := BoundaryUsageRecord(mem, rows)
	defer rec.Release()

	iw := ipc.NewWriter(w, ipc.WithSchema(BoundaryUsageSchema), ipc.WithAllocator(mem))
	if err := iw.Write(rec); err != nil {
		iw.Close()
		return fmt.Errorf("write boundary usage: %w", err)
	}
	if err := iw.Close(); err != nil {
		return fmt.Errorf("close boundary usage stream: %w", err)
	}
	return nil
}
