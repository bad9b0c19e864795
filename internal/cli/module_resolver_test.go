package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleResolver_ResolveModuleName(t *testing.T) {
	name, err := NewModuleResolver().ResolveModuleName("example.com/custom")
	require.NoError(t, err)
	assert.Equal(t, "example.com/custom", name)

	// The package tests run inside this repository's module.
	name, err = NewModuleResolver().ResolveModuleName("")
	require.NoError(t, err)
	assert.Equal(t, "github.com/toyz/autoval", name)
}

func TestModuleResolver_GroupByModule(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":             "module example.com/app\n",
		"prices/price.go":    "package prices",
		"tools/go.mod":       "module example.com/app/tools\n",
		"tools/gen/gen.go":   "package gen",
		"catalog/product.go": "package catalog",
	})

	modules, err := NewModuleResolver().GroupByModule([]string{
		filepath.Join(root, "prices"),
		filepath.Join(root, "tools", "gen"),
		filepath.Join(root, "catalog"),
	})
	require.NoError(t, err)
	require.Len(t, modules, 2)

	assert.Equal(t, root, modules[0].Dir)
	assert.Equal(t, "example.com/app", modules[0].Path)
	assert.Equal(t, []string{filepath.Join(root, "prices"), filepath.Join(root, "catalog")}, modules[0].Dirs)

	assert.Equal(t, filepath.Join(root, "tools"), modules[1].Dir)
	assert.Equal(t, "example.com/app/tools", modules[1].Path)
}

func TestModuleResolver_BuildPackagePath(t *testing.T) {
	resolver := NewModuleResolver()
	root := filepath.FromSlash("/work/app")

	tests := []struct {
		dir     string
		want    string
		wantErr bool
	}{
		{root, "example.com/app", false},
		{filepath.Join(root, "internal", "prices"), "example.com/app/internal/prices", false},
		{filepath.FromSlash("/work/other"), "", true},
	}

	for _, tt := range tests {
		got, err := resolver.BuildPackagePath("example.com/app", root, tt.dir)
		if tt.wantErr {
			assert.Error(t, err, tt.dir)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
