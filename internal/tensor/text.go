package tensor

import (
	"bytes"
	"os"
)

// DecodeText reads a newline-delimited names file. Every line holding
// anything besides whitespace is one element, kept exactly apart from its
// "\n" or "\r\n" terminator.
func DecodeText(path string) (*Array, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Reason: "read", Err: err}
	}
	return NewStrings(splitLines(raw)), nil
}

func splitLines(content []byte) []string {
	lines := make([]string, 0, bytes.Count(content, []byte{'\n'})+1)
	for len(content) > 0 {
		line, rest, _ := bytes.Cut(content, []byte{'\n'})
		content = rest
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		lines = append(lines, string(line))
	}
	return lines
}
