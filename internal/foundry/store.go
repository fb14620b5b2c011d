// Package foundry loads a geometry foundry directory: the named typed arrays
// describing a CSG scene, the name dictionaries that label their ids, and
// the diagnostics built on top.
//
// A Foundry is built once by Load and never mutated afterwards, so any
// number of goroutines may read it without locking.
package foundry

import "geofoundry/internal/tensor"

// Well-known stems.
const (
	StemSolid        = "solid"
	StemPrim         = "prim"
	StemNode         = "node"
	StemTran         = "tran"
	StemItra         = "itra"
	StemInst         = "inst"
	StemPlan         = "plan"
	StemBnd          = "bnd"
	StemBoundaryName = "bndname"
	StemMeshName     = "meshname"
)

// Foundry holds every array of one foundry directory keyed by stem.
type Foundry struct {
	fold   string
	arrays map[string]*tensor.Array
	stems  []string // load order

	// Dictionaries (ID -> Name)
	meshNames     *NameDict
	boundaryNames *NameDict
	ordinalNames  *NameDict
}

// Fold is the directory the foundry was loaded from.
func (f *Foundry) Fold() string { return f.fold }

// Stems lists loaded stems in load order.
func (f *Foundry) Stems() []string { return append([]string(nil), f.stems...) }

// Array returns the array stored under stem.
func (f *Foundry) Array(stem string) (*tensor.Array, bool) {
	a, ok := f.arrays[stem]
	return a, ok
}

func (f *Foundry) lookupArray(stem string) (*tensor.Array, error) {
	a, ok := f.arrays[stem]
	if !ok {
		return nil, &LookupError{Dict: "array", Stem: stem}
	}
	return a, nil
}

func (f *Foundry) Solid() (*tensor.Array, error) { return f.lookupArray(StemSolid) }
func (f *Foundry) Prim() (*tensor.Array, error)  { return f.lookupArray(StemPrim) }
func (f *Foundry) Node() (*tensor.Array, error)  { return f.lookupArray(StemNode) }
func (f *Foundry) Tran() (*tensor.Array, error)  { return f.lookupArray(StemTran) }
func (f *Foundry) Itra() (*tensor.Array, error)  { return f.lookupArray(StemItra) }
func (f *Foundry) Inst() (*tensor.Array, error)  { return f.lookupArray(StemInst) }
func (f *Foundry) Plan() (*tensor.Array, error)  { return f.lookupArray(StemPlan) }
func (f *Foundry) Bnd() (*tensor.Array, error)   { return f.lookupArray(StemBnd) }

func (f *Foundry) BoundaryNameArray() (*tensor.Array, error) { return f.lookupArray(StemBoundaryName) }
func (f *Foundry) MeshNameArray() (*tensor.Array, error)     { return f.lookupArray(StemMeshName) }

func (f *Foundry) MeshNames() *NameDict     { return f.meshNames }
func (f *Foundry) BoundaryNames() *NameDict { return f.boundaryNames }
func (f *Foundry) OrdinalNames() *NameDict  { return f.ordinalNames }

func (f *Foundry) MeshName(i int) (string, error)     { return f.meshNames.Lookup(i) }
func (f *Foundry) BoundaryName(i int) (string, error) { return f.boundaryNames.Lookup(i) }
func (f *Foundry) OrdinalName(i int) (string, error)  { return f.ordinalNames.Lookup(i) }

// Dict returns a dictionary by label: "mesh", "boundary" or "ordinal".
func (f *Foundry) Dict(label string) (*NameDict, bool) {
	switch label {
	case DictMesh:
		return f.meshNames, true
	case DictBoundary:
		return f.boundaryNames, true
	case DictOrdinal:
		return f.ordinalNames, true
	}
	return nil, false
}

// Dictionary labels.
const (
	DictMesh     = "mesh"
	DictBoundary = "boundary"
	DictOrdinal  = "ordinal"
)
