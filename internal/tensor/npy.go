package tensor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/sbinet/npyio"
)

// DecodeNPY reads a .npy file. The header describes dtype and shape; the
// payload after it is kept byte for byte.
func DecodeNPY(path string) (*Array, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Reason: "read", Err: err}
	}
	a, err := decodeNPY(raw)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
			return nil, de
		}
		return nil, &DecodeError{Path: path, Err: err}
	}
	return a, nil
}

func decodeNPY(raw []byte) (*Array, error) {
	if err := checkNPYPreamble(raw); err != nil {
		return nil, &DecodeError{Reason: "npy header", Err: err}
	}
	br := bytes.NewReader(raw)
	r, err := npyio.NewReader(br)
	if err != nil {
		return nil, &DecodeError{Reason: "npy header", Err: err}
	}
	descr := r.Header.Descr
	if descr.Fortran {
		return nil, &DecodeError{Reason: "fortran order payload not supported"}
	}
	dt, err := parseDescr(descr.Type)
	if err != nil {
		return nil, &DecodeError{Reason: "npy header", Err: err}
	}

	// Everything the header reader did not consume is payload.
	payload := raw[len(raw)-br.Len():]
	return NewNumeric(dt, descr.Shape, payload)
}

const npyMagic = "\x93NUMPY"

// checkNPYPreamble validates magic, version and the declared header before
// npyio sees the bytes: npyio assumes a newline terminated header.
func checkNPYPreamble(raw []byte) error {
	if len(raw) < len(npyMagic)+2 || string(raw[:len(npyMagic)]) != npyMagic {
		return errors.New("missing npy magic")
	}
	var start, hlen int
	switch major := raw[len(npyMagic)]; major {
	case 1:
		start = 10
		if len(raw) < start {
			return errors.New("truncated header length")
		}
		hlen = int(binary.LittleEndian.Uint16(raw[8:10]))
	case 2, 3:
		start = 12
		if len(raw) < start {
			return errors.New("truncated header length")
		}
		hlen = int(binary.LittleEndian.Uint32(raw[8:12]))
	default:
		return fmt.Errorf("unsupported npy version %d", major)
	}
	if hlen == 0 || hlen > len(raw)-start {
		return fmt.Errorf("header length %d does not fit in %d bytes", hlen, len(raw)-start)
	}
	if raw[start+hlen-1] != '\n' {
		return errors.New("header is not newline terminated")
	}
	return nil
}
