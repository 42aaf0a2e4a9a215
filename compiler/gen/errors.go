// Package gen builds the resolved catalog model and drives both backend
// emitters over it.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases. All generator failures are
// batch-fatal: either both output trees are produced in full, or none is.
var (
	// ErrClassification indicates an unrecognized field type token.
	ErrClassification = errors.New("catgen: field classification failed")
	// ErrUnresolvedTarget indicates a reference or collection field whose
	// target class is absent from the model.
	ErrUnresolvedTarget = errors.New("catgen: unresolved target class")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("catgen: missing configuration")
	// ErrGenerationFailed indicates a code generation or output failure.
	ErrGenerationFailed = errors.New("catgen: code generation failed")
)

// ClassifyError represents a field classification failure.
type ClassifyError struct {
	Class string
	Field string
	Token string
	Cause error
}

// Error implements the error interface.
func (e *ClassifyError) Error() string {
	var b strings.Builder
	b.WriteString("catgen: classify error")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " (token %q)", e.Token)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ClassifyError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the sentinel error for ClassifyError.
func (e *ClassifyError) Is(target error) bool { return target == ErrClassification }

// NewClassifyError creates a new ClassifyError.
func NewClassifyError(class, fieldName, token string, cause error) *ClassifyError {
	return &ClassifyError{Class: class, Field: fieldName, Token: token, Cause: cause}
}

// ResolveError represents a reference graph resolution failure.
type ResolveError struct {
	Class   string
	Field   string
	Target  string
	Message string
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	var b strings.Builder
	b.WriteString("catgen: resolve error")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Target != "" {
		fmt.Fprintf(&b, " (target %q)", e.Target)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ResolveError.
func (e *ResolveError) Is(target error) bool { return target == ErrUnresolvedTarget }

// NewResolveError creates a new ResolveError.
func NewResolveError(class, fieldName, target, message string) *ResolveError {
	return &ResolveError{Class: class, Field: fieldName, Target: target, Message: message}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("catgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("catgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrMissingConfig }

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// GenerationError represents a backend emission or output failure.
type GenerationError struct {
	Backend string
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("catgen: generation error")
	if e.Backend != "" {
		b.WriteString(" in backend ")
		b.WriteString(e.Backend)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// NewGenerationError creates a new GenerationError.
func NewGenerationError(backend, file, message string, cause error) *GenerationError {
	return &GenerationError{Backend: backend, File: file, Message: message, Cause: cause}
}

// IsClassifyError reports whether the error is a ClassifyError.
func IsClassifyError(err error) bool {
	var ce *ClassifyError
	return errors.As(err, &ce)
}

// IsResolveError reports whether the error is a ResolveError.
func IsResolveError(err error) bool {
	var re *ResolveError
	return errors.As(err, &re)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
