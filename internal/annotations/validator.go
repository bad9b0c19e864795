package annotations

import (
	"fmt"
	"sort"
)

// SchemaValidator defines the interface for validating annotations against their schemas
type SchemaValidator interface {
	// Validate annotation against its schema
	Validate(annotation *ParsedAnnotation, schema AnnotationSchema) error
}

// validator is the concrete implementation of SchemaValidator
type validator struct{}

// NewValidator creates a new schema validator
func NewValidator() SchemaValidator {
	return &validator{}
}

// Validate validates an annotation against its schema. All problems are
// collected; more than one is returned as *MultipleAnnotationErrors.
func (v *validator) Validate(annotation *ParsedAnnotation, schema AnnotationSchema) error {
	var errs []AnnotationError

	required := make([]string, 0, len(schema.Parameters))
	for name, spec := range schema.Parameters {
		if spec.Required {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	for _, name := range required {
		if !annotation.HasParameter(name) {
			errs = append(errs, &ValidationError{
				Parameter: name,
				Expected:  fmt.Sprintf("required parameter of type %s", schema.Parameters[name].Type),
				Actual:    "missing",
				Loc:       annotation.Location,
				Hint:      fmt.Sprintf("Add -%s=<value> to the annotation", name),
			})
		}
	}

	names := make([]string, 0, len(annotation.Parameters))
	for name := range annotation.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := annotation.Parameters[name]
		spec, exists := schema.Parameters[name]
		if !exists {
			errs = append(errs, &ValidationError{
				Parameter: name,
				Expected:  "known parameter",
				Actual:    fmt.Sprintf("unknown parameter '%s'", name),
				Loc:       annotation.Location,
				Hint:      v.unknownHint(name, schema),
			})
			continue
		}

		if spec.Type == BoolType {
			if _, err := parseBoolString(value); err != nil {
				errs = append(errs, &ValidationError{
					Parameter: name,
					Expected:  "boolean",
					Actual:    value,
					Loc:       annotation.Location,
					Hint:      fmt.Sprintf("Use -%s or -%s=false", name, name),
				})
				continue
			}
		}

		if spec.Validator != nil {
			if err := spec.Validator(value); err != nil {
				errs = append(errs, &ValidationError{
					Parameter: name,
					Expected:  "valid value",
					Actual:    value,
					Loc:       annotation.Location,
					Hint:      err.Error(),
				})
			}
		}
	}

	return collapse(errs)
}

func (v *validator) unknownHint(name string, schema AnnotationSchema) string {
	if len(schema.Parameters) == 0 {
		return fmt.Sprintf("//%s::%s takes no parameters, remove -%s", Prefix, schema.Type, name)
	}
	known := make([]string, 0, len(schema.Parameters))
	for k := range schema.Parameters {
		known = append(known, "-"+k)
	}
	sort.Strings(known)
	return fmt.Sprintf("Remove -%s or use one of %v", name, known)
}
