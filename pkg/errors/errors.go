// Package errors defines the error types codesync reports. Every fatal
// input failure (an unreadable file, a malformed document, a malformed
// thesaurus row) surfaces as one of these, so callers branch with
// errors.Is and errors.As instead of matching text.
package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinels matched by the typed errors below.
var (
	// ErrNotFound is matched by NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is matched by ValidationError and ParseError.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanceled marks work abandoned because its context ended.
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError lists codes a resource does not carry.
type NotFoundError struct {
	Resource string // "thesaurus"
	Codes    []string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	noun := "codes"
	if len(e.Codes) == 1 {
		noun = "code"
	}
	return fmt.Sprintf("%s has no record for %s %s", e.Resource, noun, strings.Join(e.Codes, ", "))
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a document or option that is well-formed but
// unusable, such as a concept without a display or a duplicate code.
type ValidationError struct {
	Field   string // "concept[3].display", "format"
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError reports input that could not be decoded. Line and Column are
// 1-based and zero when unknown. For thesaurus rows Field names the
// offending column.
type ParseError struct {
	Format  string // "json", "yaml", "tsv"
	File    string
	Line    int
	Column  int
	Field   string
	Message string
	Err     error
}

// Error renders as "<format> parse error at <file>:<line>:<col> (<field>): <message>",
// leaving out whatever is unknown.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Format)
	b.WriteString(" parse error")

	var at []string
	if e.File != "" {
		at = append(at, e.File)
	}
	if e.Line > 0 {
		at = append(at, strconv.Itoa(e.Line))
		if e.Column > 0 {
			at = append(at, strconv.Itoa(e.Column))
		}
	}
	if len(at) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(at, ":"))
	}
	if e.Field != "" {
		b.WriteString(" (")
		b.WriteString(e.Field)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError reports a failed filesystem operation.
type IOError struct {
	Operation string // "open", "read", "write", "create"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// ConfigError reports an unusable configuration file or save target.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Component != "" {
		msg += " in " + e.Component
	}
	msg += ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ResourceError says which input or output a failure belongs to.
type ResourceError struct {
	Operation string // "load", "save"
	Resource  string // "thesaurus", "code system", "config"
	ID        string // usually the path
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Resource, e.Err)
	}
	return fmt.Sprintf("failed to %s %s %s: %v", e.Operation, e.Resource, e.ID, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation or parse error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}

// WrapCanceled wraps a context error so that IsCanceled reports true for it.
func WrapCanceled(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrCanceled, err)
}
