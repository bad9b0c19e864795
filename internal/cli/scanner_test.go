package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestSplitPattern(t *testing.T) {
	tests := []struct {
		pattern   string
		base      string
		recursive bool
	}{
		{"./...", ".", true},
		{"...", ".", true},
		{"./internal/...", "./internal", true},
		{"/...", "/", true},
		{"./internal", "./internal", false},
		{"shop", "shop", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			base, recursive := splitPattern(tt.pattern)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.recursive, recursive)
		})
	}
}

func TestDirectoryScanner(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":             "module example.com/shop\n",
		"main.go":            "package main",
		"prices/price.go":    "package prices",
		"prices/sub/sub.go":  "package sub",
		"stale/autogen_x.go": "package stale",
		"vendor/dep/dep.go":  "package dep",
	})
	scanner := NewDirectoryScanner()

	dirs, err := scanner.ScanDirectories([]string{root + "/..."})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		root,
		filepath.Join(root, "prices"),
		filepath.Join(root, "prices", "sub"),
	}, dirs)

	dirs, err = scanner.ScanDirectories([]string{filepath.Join(root, "prices"), filepath.Join(root, "prices") + "/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "prices"), filepath.Join(root, "prices", "sub")}, dirs)

	dirs, err = scanner.ScanGeneratedDirectories([]string{root + "/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "stale")}, dirs)
}

func TestCleaner(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"prices/price.go":                    "package prices",
		"prices/autogen_values.go":           "package prices",
		"prices/autogen_price_comparable.go": "package prices",
		"orphan/autogen_values.go":           "package orphan",
		"other/autogen_values.go":            "package other",
	})

	removed, err := NewCleaner().CleanGeneratedFiles([]string{
		filepath.Join(root, "prices"),
		filepath.Join(root, "orphan"),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "prices", "autogen_values.go"),
		filepath.Join(root, "prices", "autogen_price_comparable.go"),
		filepath.Join(root, "orphan", "autogen_values.go"),
	}, removed)

	assert.FileExists(t, filepath.Join(root, "prices", "price.go"))
	assert.FileExists(t, filepath.Join(root, "other", "autogen_values.go"))
}
