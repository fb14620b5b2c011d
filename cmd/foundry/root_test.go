package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofoundry/internal/foundry"
	"geofoundry/internal/tensor/tensortest"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GEOFOUNDRY_CONFIG", "")
	configPath, foldFlag, verbose = "", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func fixture(t *testing.T) string {
	dir := t.TempDir()
	tensortest.WriteNames(t, dir, "bnd.txt", "A", "B", "C", "D")
	tensortest.WriteNodes(t, dir, 3, 3, 1, 3, 2)
	return dir
}

func TestBoundariesCommand(t *testing.T) {
	out, err := run(t, "boundaries", "--fold", fixture(t))
	require.NoError(t, err)
	assert.Equal(t, "    1 :      1 : B \n    2 :      1 : C \n    3 :      3 : D \n", out)
}

func TestDescribeCommand(t *testing.T) {
	dir := fixture(t)
	out, err := run(t, "describe", "--fold", dir, "node")
	require.NoError(t, err)
	assert.Contains(t, out, "(5, 4, 4)")
	assert.Contains(t, out, dir)
}

func TestNameCommand(t *testing.T) {
	out, err := run(t, "name", "boundary", "1", "--fold", fixture(t))
	require.NoError(t, err)
	assert.Equal(t, "B\n", out)

	_, err = run(t, "name", "boundary", "4", "--fold", fixture(t))
	assert.True(t, errors.Is(err, foundry.ErrLookup))
}

func TestMissingFold(t *testing.T) {
	_, err := run(t, "describe", "--fold", t.TempDir()+"/absent")
	assert.True(t, errors.Is(err, foundry.ErrNotFound))
}
