package foundry

import "geofoundry/internal/tensor"

// Ordinals is the fixed ten word vocabulary used to label small enumerations.
var Ordinals = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

// NameDict maps 0-based indices to names and back. It is immutable.
type NameDict struct {
	label string
	names []string
	index map[string]int
}

// NewNameDict copies names; index i maps to names[i]. When a name repeats,
// Index reports its first position.
func NewNameDict(label string, names []string) *NameDict {
	d := &NameDict{
		label: label,
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for i, n := range d.names {
		if _, ok := d.index[n]; !ok {
			d.index[n] = i
		}
	}
	return d
}

// BuildNameDict builds a dictionary over every element of a, numeric
// elements stringified. A nil array gives an empty dictionary.
func BuildNameDict(label string, a *tensor.Array) *NameDict {
	if a == nil {
		return NewNameDict(label, nil)
	}
	names := make([]string, a.Len())
	for i := range names {
		names[i] = a.Format(i)
	}
	return NewNameDict(label, names)
}

func (d *NameDict) Label() string { return d.label }

func (d *NameDict) Len() int { return len(d.names) }

// Lookup returns the name at index i, or a *LookupError outside [0, Len()).
func (d *NameDict) Lookup(i int) (string, error) {
	if i < 0 || i >= len(d.names) {
		return "", &LookupError{Dict: d.label, Index: i, Size: len(d.names)}
	}
	return d.names[i], nil
}

// Index is the reverse lookup.
func (d *NameDict) Index(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Names returns a copy of all names in index order.
func (d *NameDict) Names() []string { return append([]string(nil), d.names...) }
