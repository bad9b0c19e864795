package annotations

import (
	"fmt"
	"go/token"
)

// ValueAnnotationSchema defines the schema for //autoval::value annotations
var ValueAnnotationSchema = AnnotationSchema{
	Type:        ValueAnnotation,
	Target:      InterfaceTarget,
	Description: "Marks an interface as an immutable value type whose implementation is generated",
	Parameters: map[string]ParameterSpec{
		"Constructor": {
			Type:        StringType,
			Description: "Name of the generated constructor (defaults to new<Type>)",
			Validator: func(v string) error {
				if !token.IsIdentifier(v) {
					return fmt.Errorf("must be a Go identifier, got '%s'", v)
				}
				return nil
			},
		},
	},
	Examples: []string{
		"//autoval::value",
		"//autoval::value -Constructor=makePrice",
	},
}

// CompareByAnnotationSchema defines the schema for //autoval::compareby annotations
var CompareByAnnotationSchema = AnnotationSchema{
	Type:        CompareByAnnotation,
	Target:      MethodTarget,
	Description: "Designates the accessor whose own ordering drives the generated CompareTo",
	Parameters:  map[string]ParameterSpec{},
	Examples: []string{
		"//autoval::compareby",
	},
}

// RegisterBuiltinSchemas registers every builtin schema with the registry
func RegisterBuiltinSchemas(r AnnotationRegistry) error {
	for _, schema := range []AnnotationSchema{ValueAnnotationSchema, CompareByAnnotationSchema} {
		if err := r.Register(schema.Type, schema); err != nil {
			return err
		}
	}
	return nil
}
