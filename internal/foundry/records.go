package foundry

import (
	"fmt"

	"geofoundry/internal/tensor"
)

// Node records are 4x4 grids of 32-bit words. Most slots hold float
// geometry; the slot at BoundarySlot holds the bit pattern of a uint32
// boundary id.
const (
	RecordRows = 4
	RecordCols = 4
	WordSize   = 4
	RecordSize = RecordRows * RecordCols * WordSize
)

// Slot addresses one word of a node record.
type Slot struct {
	Row, Col int
}

var BoundarySlot = Slot{Row: 1, Col: 2}

func (s Slot) word() int { return s.Row*RecordCols + s.Col }

func (s Slot) valid() bool {
	return s.Row >= 0 && s.Row < RecordRows && s.Col >= 0 && s.Col < RecordCols
}

// WordAt reinterprets the four bytes of slot s in one record as a uint32.
func WordAt(record []byte, s Slot) (uint32, error) {
	if len(record) != RecordSize {
		return 0, &FormatAssumptionError{Reason: fmt.Sprintf("record is %d bytes, want %d", len(record), RecordSize)}
	}
	if !s.valid() {
		return 0, &FormatAssumptionError{Reason: fmt.Sprintf("slot %+v outside %dx%d record", s, RecordRows, RecordCols)}
	}
	return tensor.WordOf(record, s.word()), nil
}

// BoundaryIDOf returns the boundary id carried by one node record.
func BoundaryIDOf(record []byte) (uint32, error) {
	return WordAt(record, BoundarySlot)
}

// WordsAt extracts slot s from every record of nodes, in storage order.
func WordsAt(nodes *tensor.Array, s Slot) ([]uint32, error) {
	if err := checkNodeLayout(nodes); err != nil {
		return nil, err
	}
	if !s.valid() {
		return nil, &FormatAssumptionError{Stem: StemNode, Reason: fmt.Sprintf("slot %+v outside %dx%d record", s, RecordRows, RecordCols)}
	}
	n := nodes.Shape()[0]
	out := make([]uint32, n)
	for i := range out {
		out[i] = nodes.Word(i*RecordRows*RecordCols + s.word())
	}
	return out, nil
}

// BoundaryIDsOf returns the boundary id of every node record, in storage order.
func BoundaryIDsOf(nodes *tensor.Array) ([]uint32, error) {
	return WordsAt(nodes, BoundarySlot)
}

func checkNodeLayout(a *tensor.Array) error {
	if a == nil {
		return &FormatAssumptionError{Stem: StemNode, Reason: "array is nil"}
	}
	if a.Kind() != tensor.Numeric {
		return &FormatAssumptionError{Stem: StemNode, Reason: "array holds strings"}
	}
	if a.DType().Width != WordSize {
		return &FormatAssumptionError{Stem: StemNode, Reason: fmt.Sprintf("element type %s is not 32-bit", a.DType())}
	}
	shape := a.Shape()
	if len(shape) != 3 || shape[1] != RecordRows || shape[2] != RecordCols {
		return &FormatAssumptionError{Stem: StemNode, Reason: fmt.Sprintf("shape %s, want (N, %d, %d)", a.ShapeString(), RecordRows, RecordCols)}
	}
	return nil
}
