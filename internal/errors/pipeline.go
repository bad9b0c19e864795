package errors

import (
	"fmt"
	"strings"
)

// LoadError reports packages that could not be loaded. Type errors are not
// load errors: generated code the sources depend on may not exist yet.
type LoadError struct {
	*BaseError
	Package string   // import path of the failing package
	Details []string // individual messages from the loader
}

// NewLoadError creates a load error for a package
func NewLoadError(pkg string, details []string) *LoadError {
	message := fmt.Sprintf("failed to load package %s", pkg)
	if len(details) > 0 {
		message += ":\n  " + strings.Join(details, "\n  ")
	}
	return &LoadError{
		BaseError: New(LoadErrorCode, message),
		Package:   pkg,
		Details:   details,
	}
}

// GenerationError represents an error during code generation
type GenerationError struct {
	*BaseError
	GenerationType string // what was being generated (base, extension name)
	TargetFile     string // target file being generated
	Stage          string // stage of generation where error occurred, e.g. format
}

// WithStage sets the generation stage
func (e *GenerationError) WithStage(stage string) *GenerationError {
	e.Stage = stage
	return e
}
