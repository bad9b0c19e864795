package errors

import "fmt"

// WrapWithOperation wraps an error with an operation context
func WrapWithOperation(operation, item string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s %s", operation, item)
	return Wrap(UnknownErrorCode, message, cause)
}

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(generationType, item string, cause error) *GenerationError {
	message := fmt.Sprintf("failed to generate %s", item)
	return &GenerationError{
		BaseError:      Wrap(GenerationErrorCode, message, cause),
		GenerationType: generationType,
		TargetFile:     item,
	}
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapLoadError wraps a failure of the package loader itself
func WrapLoadError(patterns []string, cause error) *BaseError {
	return Wrap(LoadErrorCode, fmt.Sprintf("failed to load packages %v", patterns), cause).
		WithContext("patterns", patterns).
		WithSuggestion("Run 'go list' with the same patterns to see the underlying problem")
}

// AddToMultiple adds an error to a MultipleErrors collection, creating it if needed
func AddToMultiple(multiple **MultipleErrors, err AutovalError) {
	if *multiple == nil {
		*multiple = NewMultipleErrors()
	}
	(*multiple).Add(err)
}
