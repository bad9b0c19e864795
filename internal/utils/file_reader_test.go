package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReader_ReadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	reader := NewFileReader()
	content, err := reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", content)
	assert.Equal(t, 1, reader.contentCache.Size())

	content, err = reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", content)
	assert.Equal(t, 1, reader.contentCache.Size())

	require.NoError(t, os.WriteFile(path, []byte("hello, world"), 0644))
	content, err = reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", content, "a changed size invalidates the entry")
}

func TestFileReader_Errors(t *testing.T) {
	reader := NewFileReader()

	_, err := reader.ReadFile("")
	assert.Error(t, err)

	_, err = reader.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestFileReader_Exists(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "go.mod")
	require.NoError(t, os.WriteFile(path, []byte("module x\n"), 0644))

	reader := NewFileReader()
	assert.True(t, reader.Exists(path))
	assert.False(t, reader.Exists(tmpDir))
	assert.False(t, reader.Exists(filepath.Join(tmpDir, "other")))
}

func TestGoModParser(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/shop\n\ngo 1.25\n"), 0644))
	nested := filepath.Join(root, "internal", "prices")
	require.NoError(t, os.MkdirAll(nested, 0755))

	parser := NewGoModParser(NewFileReader())

	goMod, err := parser.FindGoModFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "go.mod"), goMod)

	name, err := parser.ParseModuleName(goMod)
	require.NoError(t, err)
	assert.Equal(t, "example.com/shop", name)

	dir, modulePath, err := parser.ModuleRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, dir)
	assert.Equal(t, "example.com/shop", modulePath)
}

func TestGoModParser_Errors(t *testing.T) {
	root := t.TempDir()
	parser := NewGoModParser(NewFileReader())

	_, err := parser.ParseModuleName(filepath.Join(root, "other.mod"))
	assert.ErrorContains(t, err, "not a go.mod file")

	noModule := filepath.Join(root, "go.mod")
	require.NoError(t, os.WriteFile(noModule, []byte("go 1.25\n"), 0644))
	_, err = parser.ParseModuleName(noModule)
	assert.ErrorContains(t, err, "no module declaration")
}
