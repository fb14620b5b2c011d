package foundry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofoundry/internal/tensor"
	"geofoundry/internal/tensor/tensortest"
)

// writeFixture lays out a small foundry:
//
//	bnd.npy       numeric boundary records
//	bnd.txt       boundary names A..D
//	meshname.txt  mesh names
//	node.npy      five nodes with boundaries 3,3,1,3,2
//	prim.npy      uint32 prim table
//	meta.json     ignored
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	tensortest.WriteFile(t, dir, "bnd.npy", tensortest.NPY(tensor.Float32, []int{4, 2}, tensortest.Float32s(0, 1, 2, 3, 4, 5, 6, 7)))
	tensortest.WriteNames(t, dir, "bnd.txt", "A", "B", "C", "D")
	tensortest.WriteNames(t, dir, "meshname.txt", "sWorld", "sTarget", "sDetector")
	tensortest.WriteNodes(t, dir, 3, 3, 1, 3, 2)
	tensortest.WriteFile(t, dir, "prim.npy", tensortest.NPY(tensor.Uint32, []int{2, 4}, tensortest.Uint32s(1, 0, 0, 0, 4, 1, 0, 0)))
	tensortest.WriteFile(t, dir, "meta.json", []byte(`{"note": "ignored"}`))
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeFixture(t)

	f, err := Load(dir, WithLogger(zerolog.New(zerolog.NewTestWriter(t))))
	require.NoError(t, err)

	assert.Equal(t, dir, f.Fold())
	assert.Equal(t, []string{"bnd", "bndname", "meshname", "node", "prim"}, f.Stems())

	node, err := f.Node()
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, 4}, node.Shape())

	_, ok := f.Array("meta")
	assert.False(t, ok)
}

func TestLoadKeepsBothBndVariants(t *testing.T) {
	dir := writeFixture(t)

	f, err := Load(dir)
	require.NoError(t, err)

	bnd, err := f.Bnd()
	require.NoError(t, err)
	assert.Equal(t, tensor.Numeric, bnd.Kind())
	assert.Equal(t, []int{4, 2}, bnd.Shape())
	assert.Equal(t, float32(7), bnd.Float32(7))

	names, err := f.BoundaryNameArray()
	require.NoError(t, err)
	assert.Equal(t, tensor.Strings, names.Kind())
	assert.Equal(t, []string{"A", "B", "C", "D"}, names.Strings())
}

func TestLoadMissingFolder(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "CSGFoundry")

	f, err := Load(missing)
	require.Error(t, err)
	assert.Nil(t, f)
	assert.True(t, errors.Is(err, ErrNotFound))

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, missing, nf.Path)
	assert.Contains(t, err.Error(), missing)
}

func TestLoadFileInsteadOfFolder(t *testing.T) {
	path := tensortest.WriteFile(t, t.TempDir(), "node.npy", nil)

	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadDecodeFailureIsFatal(t *testing.T) {
	dir := writeFixture(t)
	bad := tensortest.WriteFile(t, dir, "tran.npy", tensortest.NPY(tensor.Float32, []int{2, 4, 4}, make([]byte, 64)))

	f, err := Load(dir)
	require.Error(t, err)
	assert.Nil(t, f)
	assert.True(t, errors.Is(err, ErrDecode))

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, bad, de.Path)
	assert.Equal(t, 128, de.Expected)
	assert.Equal(t, 64, de.Actual)
}

func TestLoadStemCollision(t *testing.T) {
	dir := t.TempDir()
	tensortest.WriteFile(t, dir, "plan.npy", tensortest.NPY(tensor.Float32, []int{1, 4}, tensortest.Float32s(0, 0, 1, 5)))
	tensortest.WriteNames(t, dir, "plan.txt", "upper")

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCollision))
}

func TestLoadSkipsDirectoriesAndFollowsLinks(t *testing.T) {
	dir := writeFixture(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "solid.npy"), 0o755))

	other := t.TempDir()
	target := tensortest.WriteFile(t, other, "inst.npy", tensortest.NPY(tensor.Float32, []int{1, 4, 4}, make([]byte, 64)))
	if err := os.Symlink(target, filepath.Join(dir, "inst.npy")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	f, err := Load(dir)
	require.NoError(t, err)
	_, err = f.Solid()
	assert.True(t, errors.Is(err, ErrLookup))
	inst, err := f.Inst()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 4}, inst.Shape())
}

func TestStemFor(t *testing.T) {
	assert.Equal(t, "node", StemFor("node.npy"))
	assert.Equal(t, "bnd", StemFor("bnd.npy"))
	assert.Equal(t, "bndname", StemFor("bnd.txt"))
	assert.Equal(t, "meshname", StemFor("meshname.txt"))

	assert.Equal(t, "bnd.txt", SourceName("bndname", tensor.Strings))
	assert.Equal(t, "bnd.npy", SourceName("bnd", tensor.Numeric))
	assert.Equal(t, "meshname.txt", SourceName("meshname", tensor.Strings))
	assert.Equal(t, "bndname.npy", SourceName("bndname", tensor.Numeric))
}

func TestDescribeNumericBndname(t *testing.T) {
	dir := t.TempDir()
	tensortest.WriteFile(t, dir, "bndname.npy", tensortest.NPY(tensor.Uint32, []int{1}, tensortest.Uint32s(5)))

	f, err := Load(dir)
	require.NoError(t, err)

	line, err := f.Describe("bndname")
	require.NoError(t, err)
	assert.Contains(t, line, filepath.Join(dir, "bndname.npy"))
	assert.NotContains(t, line, "bnd.npy")
}

func TestLoadMalformedHeaderIsDecodeError(t *testing.T) {
	dir := writeFixture(t)
	header := "{'descr': '<f4', 'fortran_order': False, 'shape': (1, 4, 4), }"
	raw := append([]byte("\x93NUMPY\x01\x00"), byte(len(header)), 0)
	raw = append(raw, header...)
	tensortest.WriteFile(t, dir, "tran.npy", raw)

	var (
		f   *Foundry
		err error
	)
	require.NotPanics(t, func() { f, err = Load(dir) })
	assert.Nil(t, f)
	assert.True(t, errors.Is(err, ErrDecode))
}
