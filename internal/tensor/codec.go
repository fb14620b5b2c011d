package tensor

import (
	"fmt"
	"path/filepath"
)

const (
	NPYExt  = ".npy"
	TextExt = ".txt"
)

// Recognized reports whether name carries one of the decodable extensions.
func Recognized(name string) bool {
	switch filepath.Ext(name) {
	case NPYExt, TextExt:
		return true
	}
	return false
}

// Decode picks the codec from the file extension.
func Decode(path string) (*Array, error) {
	switch filepath.Ext(path) {
	case NPYExt:
		return DecodeNPY(path)
	case TextExt:
		return DecodeText(path)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
}
