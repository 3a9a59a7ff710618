// Package errors provides the error kinds and structured errors for fsgen.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// DetailError captures structured error information for terminal output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path the error relates to (optional).
	Location string

	// Field is the option or record field at fault (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the error kind, one of the sentinels in this package.
	Cause error

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the error kind and the underlying error.
func (e *DetailError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewValidationError creates a generic validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewInvalidNameError reports a malformed endpoint name.
func NewInvalidNameError(name, reason string) error {
	return &DetailError{
		Type:    "invalid name",
		Message: fmt.Sprintf("%q: %s", name, reason),
		Hint:    "Use letters, digits and hyphens; separate nested resources with '/'.",
		Cause:   ErrInvalidName,
	}
}

// NewDuplicatePathError reports a manifest path claimed twice.
func NewDuplicatePathError(path string, owners ...string) error {
	e := &DetailError{
		Type:     "duplicate output path",
		Message:  "output path is produced more than once",
		Location: path,
		Cause:    ErrDuplicateOutputPath,
	}
	if len(owners) > 0 {
		e.Context = map[string]string{"Owners": strings.Join(owners, ", ")}
	}
	return e
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewConfigNotFoundError reports a missing project config file.
func NewConfigNotFoundError(location string) error {
	return &DetailError{
		Type:     "project config not found",
		Message:  "no generator config in project",
		Location: location,
		Hint:     "Run 'fsgen new' first, or pass --dir pointing at a generated project.",
		Cause:    ErrConfigNotFound,
	}
}

// NewConfigCorruptError reports a project config that cannot be used.
func NewConfigCorruptError(location, message string, err error) error {
	return &DetailError{
		Type:     "project config corrupt",
		Message:  message,
		Location: location,
		Hint:     "Fix or regenerate the config file; unknown fields are ignored but values must be valid.",
		Cause:    ErrConfigCorrupt,
		Err:      err,
	}
}

// NewMergeAnchorError reports an aggregate file whose generated region is gone.
func NewMergeAnchorError(location, registry string) error {
	return &DetailError{
		Type:     "merge anchor missing",
		Message:  fmt.Sprintf("generated %q region not found", registry),
		Location: location,
		Hint:     fmt.Sprintf("Restore the '// fsgen:%s:begin' and '// fsgen:%s:end' marker lines.", registry, registry),
		Cause:    ErrMergeAnchorMissing,
	}
}

// NewIOError wraps a filesystem failure.
func NewIOError(op, location string, err error) error {
	return &DetailError{
		Type:     "i/o failure",
		Message:  op,
		Location: location,
		Cause:    ErrIOFailure,
		Err:      err,
	}
}

// Wrap wraps an error kind with a message.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
