package annotations

import "fmt"

// Prefix is the namespace every autoval annotation starts with, as in
// //autoval::value.
const Prefix = "autoval"

// AnnotationType represents the type of annotation
type AnnotationType int

const (
	ValueAnnotation AnnotationType = iota
	CompareByAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case ValueAnnotation:
		return "value"
	case CompareByAnnotation:
		return "compareby"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts string to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "value":
		return ValueAnnotation, nil
	case "compareby":
		return CompareByAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// TargetKind is the kind of declaration an annotation may be attached to
type TargetKind int

const (
	InterfaceTarget TargetKind = iota // a type declaration with an interface type
	MethodTarget                      // a method inside an interface type
)

// String returns the string representation of the target kind
func (k TargetKind) String() string {
	switch k {
	case InterfaceTarget:
		return "interface type"
	case MethodTarget:
		return "interface method"
	default:
		return "unknown"
	}
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String returns the location as file:line:column
func (l SourceLocation) String() string {
	if l.File == "" {
		return "unknown location"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// ParsedAnnotation represents a fully parsed annotation
type ParsedAnnotation struct {
	Type       AnnotationType    // Annotation type enum
	Parameters map[string]string // Named parameters, flags map to "true"
	Location   SourceLocation    // Source location
	Raw        string            // Original annotation text
}

// GetString returns a parameter value with optional default
func (p *ParsedAnnotation) GetString(paramName string, defaultValue ...string) string {
	if value, exists := p.Parameters[paramName]; exists {
		return value
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetBool returns a boolean parameter value; flags given without a value are true
func (p *ParsedAnnotation) GetBool(paramName string) bool {
	value, exists := p.Parameters[paramName]
	if !exists {
		return false
	}
	b, err := parseBoolString(value)
	return err == nil && b
}

// HasParameter checks if a parameter exists
func (p *ParsedAnnotation) HasParameter(paramName string) bool {
	_, exists := p.Parameters[paramName]
	return exists
}

// ParameterType represents the type of a parameter
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	default:
		return "unknown"
	}
}

// ParameterSpec defines the specification for an annotation parameter
type ParameterSpec struct {
	Type        ParameterType      // Parameter type
	Required    bool               // Whether parameter is required
	Description string             // Parameter description
	Validator   func(string) error // Custom validator function
}

// AnnotationSchema defines the schema for an annotation type
type AnnotationSchema struct {
	Type        AnnotationType           // Annotation type enum
	Target      TargetKind               // Declaration the annotation attaches to
	Description string                   // Human-readable description
	Parameters  map[string]ParameterSpec // Parameter specifications
	Examples    []string                 // Usage examples
}

func parseBoolString(s string) (bool, error) {
	switch s {
	case "true", "True", "TRUE", "1", "yes", "on":
		return true, nil
	case "false", "False", "FALSE", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s", s)
	}
}
