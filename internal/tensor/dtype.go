package tensor

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// DType describes the element type of a numeric array.
type DType struct {
	Kind  byte // 'f' float, 'u' unsigned, 'i' signed
	Width int  // bytes per element
}

var (
	Float32 = DType{Kind: 'f', Width: 4}
	Float64 = DType{Kind: 'f', Width: 8}
	Uint8   = DType{Kind: 'u', Width: 1}
	Uint32  = DType{Kind: 'u', Width: 4}
	Uint64  = DType{Kind: 'u', Width: 8}
	Int8    = DType{Kind: 'i', Width: 1}
	Int32   = DType{Kind: 'i', Width: 4}
	Int64   = DType{Kind: 'i', Width: 8}
)

var supported = map[DType]bool{
	Float32: true, Float64: true,
	Uint8: true, Uint32: true, Uint64: true,
	Int8: true, Int32: true, Int64: true,
}

// String renders the numpy type code without byte order, e.g. "f4".
func (d DType) String() string {
	return fmt.Sprintf("%c%d", d.Kind, d.Width)
}

// hostOrder is the numpy byte order character matching this machine.
var hostOrder = func() byte {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	if b[0] == 1 {
		return '<'
	}
	return '>'
}()

// parseDescr turns a numpy descr such as "<f4" into a DType.
func parseDescr(descr string) (DType, error) {
	if len(descr) < 3 {
		return DType{}, fmt.Errorf("malformed descr %q", descr)
	}
	order := descr[0]
	width, err := strconv.Atoi(descr[2:])
	if err != nil {
		return DType{}, fmt.Errorf("malformed descr %q", descr)
	}
	dt := DType{Kind: descr[1], Width: width}
	if !supported[dt] {
		return DType{}, fmt.Errorf("unsupported dtype %q", descr)
	}
	switch order {
	case '=':
	case '|':
		if width != 1 {
			return DType{}, fmt.Errorf("descr %q: '|' byte order on multi-byte type", descr)
		}
	case '<', '>':
		if width > 1 && order != hostOrder {
			return DType{}, fmt.Errorf("descr %q: byte order differs from host %q", descr, hostOrder)
		}
	default:
		return DType{}, fmt.Errorf("malformed descr %q", descr)
	}
	return dt, nil
}
