package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterBuiltinSchemas(r))

	assert.True(t, r.IsRegistered(ValueAnnotation))
	assert.True(t, r.IsRegistered(CompareByAnnotation))
	assert.Equal(t, []AnnotationType{ValueAnnotation, CompareByAnnotation}, r.ListTypes())

	schema, err := r.GetSchema(ValueAnnotation)
	require.NoError(t, err)
	assert.Equal(t, InterfaceTarget, schema.Target)
	assert.Contains(t, schema.Parameters, "Constructor")
}

func TestRegistry_RejectsDuplicatesAndMismatches(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(CompareByAnnotation, CompareByAnnotationSchema))

	err := r.Register(CompareByAnnotation, CompareByAnnotationSchema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	err = r.Register(ValueAnnotation, CompareByAnnotationSchema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")

	_, err = NewRegistry().GetSchema(ValueAnnotation)
	assert.Error(t, err)
}

func TestRegistry_RejectsEmptyParameterName(t *testing.T) {
	schema := AnnotationSchema{
		Type:       ValueAnnotation,
		Parameters: map[string]ParameterSpec{"": {Type: StringType}},
	}
	err := NewRegistry().Register(ValueAnnotation, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameter name cannot be empty")
}
