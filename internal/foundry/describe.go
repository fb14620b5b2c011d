package foundry

import (
	"fmt"
	"path/filepath"
	"strings"

	"geofoundry/internal/tensor"
)

const describeFormat = "   %10s : %20s  : %s "

// Describe renders stem, shape and the file the array came from.
func (f *Foundry) Describe(stem string) (string, error) {
	a, err := f.lookupArray(stem)
	if err != nil {
		return "", err
	}
	return f.describe(stem, a), nil
}

func (f *Foundry) describe(stem string, a *tensor.Array) string {
	path := filepath.Join(f.fold, SourceName(stem, a.Kind()))
	return fmt.Sprintf(describeFormat, stem, a.ShapeString(), path)
}

// DescribeAll describes every stem in load order, one per line.
func (f *Foundry) DescribeAll() string {
	lines := make([]string, len(f.stems))
	for i, stem := range f.stems {
		lines[i] = f.describe(stem, f.arrays[stem])
	}
	return strings.Join(lines, "\n")
}

func (f *Foundry) String() string { return f.DescribeAll() }
