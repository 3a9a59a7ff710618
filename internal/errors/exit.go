package errors

import "errors"

// Exit codes returned by the fsgen binary.
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitValidationError = 2
	ExitNotFound        = 5
	ExitConfigCorrupt   = 6
	ExitMergeAnchor     = 7
	ExitIOFailure       = 8
	ExitCommandFailed   = 9
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError determines the exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrConfigCorrupt):
		return ExitConfigCorrupt
	case errors.Is(err, ErrMergeAnchorMissing):
		return ExitMergeAnchor
	case errors.Is(err, ErrIOFailure):
		return ExitIOFailure
	case errors.Is(err, ErrCommandFailed):
		return ExitCommandFailed
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of an exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitNotFound:
		return "Not Found"
	case ExitConfigCorrupt:
		return "Config Corrupt"
	case ExitMergeAnchor:
		return "Merge Anchor Missing"
	case ExitIOFailure:
		return "I/O Failure"
	case ExitCommandFailed:
		return "Command Failed"
	default:
		return "Unknown"
	}
}
