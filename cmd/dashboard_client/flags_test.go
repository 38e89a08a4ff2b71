package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yml := filepath.Join(dir, "config.yml")
	txt := filepath.Join(dir, "config.txt")
	require.NoError(t, os.WriteFile(yml, nil, 0o600))
	require.NoError(t, os.WriteFile(txt, nil, 0o600))

	assert.NoError(t, validateConfig(yml))
	assert.ErrorContains(t, validateConfig(txt), "invalid extension")
	assert.ErrorContains(t, validateConfig(dir), "is a directory")
	assert.ErrorContains(t, validateConfig(filepath.Join(dir, "missing.yaml")), "does not exist")
}

func TestValidateDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	assert.NoError(t, validateDirectory(dir))
	assert.ErrorContains(t, validateDirectory(file), "is not a directory")
	assert.ErrorContains(t, validateDirectory(filepath.Join(dir, "missing")), "does not exist")
}

func TestValidateFlags(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateFormat("xlsx"))
	assert.Error(t, validateFormat("docx"))

	assert.NoError(t, validateLogLevel("debug"))
	assert.Error(t, validateLogLevel("verbose"))
}

func TestValidateFont(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ttf := filepath.Join(dir, "simhei.ttf")
	ttc := filepath.Join(dir, "wqy-microhei.ttc")
	require.NoError(t, os.WriteFile(ttf, nil, 0o600))
	require.NoError(t, os.WriteFile(ttc, nil, 0o600))

	assert.NoError(t, validateFont(ttf))
	assert.ErrorContains(t, validateFont(ttc), "must be a .ttf file")
	assert.ErrorContains(t, validateFont(filepath.Join(dir, "missing.ttf")), "does not exist")
}
