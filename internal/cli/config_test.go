package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoval/internal/generator"
	"github.com/toyz/autoval/internal/typesys"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, typesys.DefaultCanonical, config.Canonical)
	assert.Equal(t, generator.DefaultOutputFile, config.Output)
	assert.NoError(t, config.Validate())
	assert.Positive(t, config.WorkerCount())
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
canonical: example.com/shop/order.Comparable
output: autogen_shop.go
workers: 2
module: example.com/shop
dry_run: true
`)
	config, err := LoadConfigFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, "example.com/shop/order.Comparable", config.Canonical)
	assert.Equal(t, "autogen_shop.go", config.Output)
	assert.Equal(t, 2, config.Workers)
	assert.Equal(t, 2, config.WorkerCount())
	assert.Equal(t, "example.com/shop", config.ModuleName)
	assert.True(t, config.DryRun)
}

func TestLoadConfigFile_KeepsDefaults(t *testing.T) {
	config, err := LoadConfigFile(writeConfig(t, "workers: 3\n"), true)
	require.NoError(t, err)
	assert.Equal(t, typesys.DefaultCanonical, config.Canonical)
	assert.Equal(t, generator.DefaultOutputFile, config.Output)

	config, err = LoadConfigFile(writeConfig(t, ""), true)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), DefaultConfigFile)

	config, err := LoadConfigFile(missing, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	_, err = LoadConfigFile(missing, true)
	assert.ErrorContains(t, err, "failed to read configuration")
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "canonicall: x.Y\n", "failed to parse configuration"},
		{"bad yaml", "workers: [\n", "failed to parse configuration"},
		{"canonical without name", "canonical: example.com/order\n", "canonical"},
		{"canonical bad name", "canonical: example.com/order.9Comparable\n", "canonical"},
		{"output prefix", "output: values.go\n", "must start with 'autogen_'"},
		{"output suffix", "output: autogen_values.txt\n", "must end with '.go'"},
		{"output test file", "output: autogen_values_test.go\n", "cannot be a test file"},
		{"output in a directory", "output: gen/autogen_values.go\n", "must start with 'autogen_'"},
		{"output with a separator", "output: autogen_gen/values.go\n", "cannot contain a path separator"},
		{"negative workers", "workers: -1\n", "cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFile(writeConfig(t, tt.content), true)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
