package tensor

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

// Kind tags which variant an Array holds.
type Kind int

const (
	Numeric Kind = iota
	Strings
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Strings:
		return "strings"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Array is an immutable n-dimensional array. Accessors hand out copies, so
// an Array may be shared between goroutines freely.
type Array struct {
	kind  Kind
	dtype DType
	shape []int
	data  []byte   // Numeric payload, host byte order
	strs  []string // Strings elements
}

// NewNumeric copies data into a new numeric array. The length of data must
// be exactly product(shape) * dt.Width.
func NewNumeric(dt DType, shape []int, data []byte) (*Array, error) {
	if !supported[dt] {
		return nil, &DecodeError{Reason: "unsupported dtype " + dt.String()}
	}
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, &DecodeError{Reason: fmt.Sprintf("negative dimension in shape %v", shape)}
		}
		n *= d
	}
	if want := n * dt.Width; want != len(data) {
		return nil, &DecodeError{
			Reason:   fmt.Sprintf("payload does not match %s%s", dt, formatShape(shape)),
			Expected: want,
			Actual:   len(data),
		}
	}
	return &Array{
		kind:  Numeric,
		dtype: dt,
		shape: append([]int(nil), shape...),
		data:  append([]byte(nil), data...),
	}, nil
}

// NewStrings copies values into a one dimensional strings array.
func NewStrings(values []string) *Array {
	return &Array{
		kind:  Strings,
		shape: []int{len(values)},
		strs:  append([]string(nil), values...),
	}
}

func (a *Array) Kind() Kind { return a.kind }

// DType is the zero DType for strings arrays.
func (a *Array) DType() DType { return a.dtype }

func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

func (a *Array) NDim() int { return len(a.shape) }

// Len is the total number of elements.
func (a *Array) Len() int {
	if a.kind == Strings {
		return len(a.strs)
	}
	return len(a.data) / a.dtype.Width
}

// ByteLen is the payload size; for strings the summed string lengths.
func (a *Array) ByteLen() int {
	if a.kind == Strings {
		n := 0
		for _, s := range a.strs {
			n += len(s)
		}
		return n
	}
	return len(a.data)
}

// Bytes returns a copy of the numeric payload.
func (a *Array) Bytes() []byte { return append([]byte(nil), a.data...) }

// Strings returns a copy of the string elements.
func (a *Array) Strings() []string { return append([]string(nil), a.strs...) }

// StringAt returns element i of a strings array.
func (a *Array) StringAt(i int) string { return a.strs[i] }

// Words is the number of 32-bit words in the numeric payload.
func (a *Array) Words() int { return len(a.data) / 4 }

// Word reinterprets payload bytes [4i, 4i+4) as a host order uint32. It is
// valid for any numeric dtype and indexes 32-bit words, not elements.
func (a *Array) Word(i int) uint32 {
	return WordOf(a.data, i)
}

// WordOf reinterprets bytes [4i, 4i+4) of b as a host order uint32.
func WordOf(b []byte, i int) uint32 {
	return binary.NativeEndian.Uint32(b[4*i : 4*i+4])
}

// Float32 views word i as an IEEE-754 single.
func (a *Array) Float32(i int) float32 {
	return math.Float32frombits(a.Word(i))
}

// RecordLen is the byte size of one record along the first axis.
func (a *Array) RecordLen() int {
	if len(a.shape) == 0 || a.shape[0] == 0 {
		return 0
	}
	return len(a.data) / a.shape[0]
}

// Record returns a copy of the raw bytes of record i along the first axis.
func (a *Array) Record(i int) []byte {
	n := a.RecordLen()
	return append([]byte(nil), a.data[i*n:(i+1)*n]...)
}

// Format renders element i as text: strings verbatim, numbers in their
// shortest round-tripping form.
func (a *Array) Format(i int) string {
	if a.kind == Strings {
		return a.strs[i]
	}
	w := a.dtype.Width
	b := a.data[i*w : (i+1)*w]
	switch a.dtype {
	case Float32:
		return strconv.FormatFloat(float64(math.Float32frombits(binary.NativeEndian.Uint32(b))), 'g', -1, 32)
	case Float64:
		return strconv.FormatFloat(math.Float64frombits(binary.NativeEndian.Uint64(b)), 'g', -1, 64)
	case Uint8:
		return strconv.FormatUint(uint64(b[0]), 10)
	case Uint32:
		return strconv.FormatUint(uint64(binary.NativeEndian.Uint32(b)), 10)
	case Uint64:
		return strconv.FormatUint(binary.NativeEndian.Uint64(b), 10)
	case Int8:
		return strconv.FormatInt(int64(int8(b[0])), 10)
	case Int32:
		return strconv.FormatInt(int64(int32(binary.NativeEndian.Uint32(b))), 10)
	case Int64:
		return strconv.FormatInt(int64(binary.NativeEndian.Uint64(b)), 10)
	}
	return ""
}

// ShapeString renders the shape the way numpy prints it: "(5, 4, 4)", "(3,)".
func (a *Array) ShapeString() string { return formatShape(a.shape) }

// Checksum is the xxh3 digest of the payload. Strings arrays hash their
// elements joined by newlines.
func (a *Array) Checksum() uint64 {
	if a.kind == Strings {
		return xxh3.HashString(strings.Join(a.strs, "\n"))
	}
	return xxh3.Hash(a.data)
}

func formatShape(shape []int) string {
	if len(shape) == 1 {
		return "(" + strconv.Itoa(shape[0]) + ",)"
	}
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
