package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError names the configuration field a value was rejected for
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Validator checks a single configuration value
type Validator[T any] func(T) error

// ValidatorChain runs validators in order and stops at the first failure
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add appends a validator to the chain
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain
func (vc *ValidatorChain[T]) Validate(value T) error {
	for _, validator := range vc.validators {
		if err := validator(value); err != nil {
			return err
		}
	}
	return nil
}

func rule[T any](field, message string, ok func(T) bool) Validator[T] {
	return func(value T) error {
		if ok(value) {
			return nil
		}
		return ValidationError{Field: field, Value: value, Message: message}
	}
}

// NotEmpty rejects the empty string
func NotEmpty(field string) Validator[string] {
	return rule(field, "cannot be empty", func(s string) bool { return s != "" })
}

var qualifiedName = regexp.MustCompile(`^[^\s]+\.[^./\s]+$`)

// QualifiedTypeName accepts import/path.Name. Whether Name is an identifier
// is left to the type system.
func QualifiedTypeName(field string) Validator[string] {
	return rule(field, "must have the form import/path.Name", qualifiedName.MatchString)
}

// GeneratedFileName accepts a bare autogen_*.go file name. Test files are
// rejected since the loader never sees them.
func GeneratedFileName(field string) *ValidatorChain[string] {
	return NewValidatorChain(
		rule(field, fmt.Sprintf("must start with '%s'", GeneratedFilePrefix), func(s string) bool {
			return strings.HasPrefix(s, GeneratedFilePrefix)
		}),
		rule(field, "must end with '.go'", func(s string) bool { return strings.HasSuffix(s, ".go") }),
		rule(field, "cannot be a test file", func(s string) bool { return !strings.HasSuffix(s, "_test.go") }),
		rule(field, "cannot contain a path separator", func(s string) bool { return !strings.ContainsAny(s, `/\`) }),
	)
}

// NonNegative rejects negative counts
func NonNegative(field string) Validator[int] {
	return rule(field, "cannot be negative", func(n int) bool { return n >= 0 })
}
