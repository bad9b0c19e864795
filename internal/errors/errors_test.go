package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_Formatting(t *testing.T) {
	err := New(GenerationErrorCode, "boom")
	assert.Equal(t, "boom", err.Error())

	err.WithLocation(SourceLocation{File: "price.go", Line: 3, Column: 7})
	assert.Equal(t, "price.go:3:7: boom", err.Error())
	assert.Equal(t, GenerationErrorCode, err.ErrorCode())
	assert.Equal(t, "GenerationError", err.ErrorCode().String())
}

func TestSourceLocation_String(t *testing.T) {
	assert.Equal(t, "unknown location", SourceLocation{}.String())
	assert.Equal(t, "a.go", SourceLocation{File: "a.go"}.String())
	assert.Equal(t, "a.go:2", SourceLocation{File: "a.go", Line: 2}.String())
	assert.Equal(t, "a.go:2:5", SourceLocation{File: "a.go", Line: 2, Column: 5}.String())
}

func TestWrapFileSystemError(t *testing.T) {
	err := WrapFileSystemError("write", "/tmp/autogen_values.go", fs.ErrPermission)

	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, FileSystemErrorCode, err.ErrorCode())
	assert.Equal(t, "write", err.Context()["operation"])
	assert.Equal(t, "failed to write file '/tmp/autogen_values.go': permission denied", err.Error())
}

func TestWrapGenerateError(t *testing.T) {
	cause := stderrors.New("render failed")
	err := WrapGenerateError("extension", "autogen_price_comparable.go", cause)

	var target *GenerationError
	require.True(t, stderrors.As(error(err), &target))
	assert.Equal(t, "extension", target.GenerationType)
	assert.Equal(t, "autogen_price_comparable.go", target.TargetFile)
	assert.ErrorIs(t, err, cause)
}

func TestNewLoadError(t *testing.T) {
	err := NewLoadError("example.com/shop", []string{"shop.go:1:1: expected 'package'"})

	assert.Equal(t, LoadErrorCode, err.ErrorCode())
	assert.Equal(t, "failed to load package example.com/shop:\n  shop.go:1:1: expected 'package'", err.Error())
	assert.Equal(t, "failed to load package example.com/shop", NewLoadError("example.com/shop", nil).Error())
}

func TestMultipleErrors(t *testing.T) {
	var multi *MultipleErrors
	AddToMultiple(&multi, NewLoadError("example.com/shop", nil))
	AddToMultiple(&multi, WrapConfigurationError("autoval.yaml", "parse", stderrors.New("unknown key")))

	require.NotNil(t, multi)
	assert.Equal(t, 2, multi.Count())
	assert.True(t, multi.HasCode(ConfigurationErrorCode))
	assert.Len(t, multi.GetByCode(LoadErrorCode), 1)
	assert.Contains(t, multi.Error(), "multiple errors (2 total)")
	assert.Equal(t, LoadErrorCode, multi.ErrorCode())
}

func TestMultipleErrors_IsAs(t *testing.T) {
	var multi *MultipleErrors
	AddToMultiple(&multi, WrapFileSystemError("read", "price.go", fs.ErrNotExist))
	AddToMultiple(&multi, NewLoadError("example.com/shop", []string{"bad"}))

	assert.ErrorIs(t, multi, fs.ErrNotExist)

	var loadErr *LoadError
	require.ErrorAs(t, multi, &loadErr)
	assert.Equal(t, "example.com/shop", loadErr.Package)
}
