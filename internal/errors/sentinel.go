package errors

import "errors"

// kind is a sentinel error that belongs to a broader category, so callers can
// match either the exact kind or the category with errors.Is.
type kind struct {
	msg      string
	category error
}

func (k *kind) Error() string { return k.msg }

func (k *kind) Unwrap() error { return k.category }

// Categories.
var (
	// ErrValidation covers every failure detected purely from in-memory state,
	// before anything is written to disk.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a file, project, or record was not found.
	ErrNotFound = errors.New("not found")
)

// Error kinds surfaced by the generator core.
var (
	// ErrInvalidOptionCombination indicates the validator rejected conflicting options.
	ErrInvalidOptionCombination error = &kind{msg: "invalid option combination", category: ErrValidation}

	// ErrInvalidName indicates a malformed endpoint identifier.
	ErrInvalidName error = &kind{msg: "invalid name", category: ErrValidation}

	// ErrDuplicateOutputPath indicates two entries target the same output path.
	ErrDuplicateOutputPath error = &kind{msg: "duplicate output path", category: ErrValidation}

	// ErrConfigNotFound indicates the project config file is absent.
	ErrConfigNotFound error = &kind{msg: "project config not found", category: ErrNotFound}

	// ErrConfigCorrupt indicates the project config file cannot be turned into a valid option set.
	ErrConfigCorrupt = errors.New("project config corrupt")

	// ErrMergeAnchorMissing indicates an aggregate file lost its generated region.
	ErrMergeAnchorMissing = errors.New("merge anchor missing")

	// ErrIOFailure indicates an underlying read, write, or rename failure.
	ErrIOFailure = errors.New("i/o failure")

	// ErrCommandFailed indicates an external command (install, lint, tests) failed.
	ErrCommandFailed = errors.New("external command failed")
)
