// Package tensortest builds foundry fixtures for tests.
package tensortest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"geofoundry/internal/tensor"
)

// NPY encodes payload as a version 1.0 .npy file in host byte order.
func NPY(dt tensor.DType, shape []int, payload []byte) []byte {
	order := "<"
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	if probe[0] == 0 {
		order = ">"
	}
	if dt.Width == 1 {
		order = "|"
	}

	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprint(d)
	}
	shapeStr := "(" + strings.Join(dims, ", ") + ")"
	if len(shape) == 1 {
		shapeStr = "(" + dims[0] + ",)"
	}
	header := fmt.Sprintf("{'descr': '%s%s', 'fortran_order': False, 'shape': %s, }", order, dt, shapeStr)

	// magic(6) + version(2) + len(2) + header + padding + '\n' is a multiple of 64
	total := 10 + len(header) + 1
	if pad := total % 64; pad != 0 {
		header += strings.Repeat(" ", 64-pad)
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	buf.Write(payload)
	return buf.Bytes()
}

// Float32s packs values in host order.
func Float32s(vals ...float32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.NativeEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// Uint32s packs values in host order.
func Uint32s(vals ...uint32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.NativeEndian.PutUint32(out[4*i:], v)
	}
	return out
}

// NodeRecords builds one 4x4 float32 record per boundary id. Every slot
// holds a float geometry value except row 1 column 2, which carries the id
// bit pattern.
func NodeRecords(boundaries ...uint32) []byte {
	words := make([]uint32, 0, 16*len(boundaries))
	for n, b := range boundaries {
		for slot := 0; slot < 16; slot++ {
			if slot == 1*4+2 {
				words = append(words, b)
				continue
			}
			words = append(words, math.Float32bits(float32(n)+float32(slot)/16))
		}
	}
	return Uint32s(words...)
}

// WriteFile writes data to dir/name and returns the path.
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatal(err)
	}
	return path
}

// WriteNodes writes node.npy holding NodeRecords(boundaries...).
func WriteNodes(tb testing.TB, dir string, boundaries ...uint32) string {
	tb.Helper()
	return WriteFile(tb, dir, "node.npy", NPY(tensor.Float32, []int{len(boundaries), 4, 4}, NodeRecords(boundaries...)))
}

// WriteNames writes name.txt with one name per line.
func WriteNames(tb testing.TB, dir, name string, names ...string) string {
	tb.Helper()
	return WriteFile(tb, dir, name, []byte(strings.Join(names, "\n")+"\n"))
}
