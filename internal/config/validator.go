package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
)

//go:embed schema/config.cue
var configSchemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap marks config validation failures as validation errors.
func (e ValidationErrors) Unwrap() error { return oerrors.ErrValidation }

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(configSchemaCUE, cue.Filename("config.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema.LookupPath(cue.ParsePath("#Config")),
	}, nil
}

// Validate checks raw YAML config data against the schema.
func (v *Validator) Validate(filename string, data []byte) error {
	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return ValidationErrors{{Field: filename, Message: err.Error()}}
	}

	value := v.ctx.BuildFile(file)
	if value.Err() != nil {
		return ValidationErrors{{Field: filename, Message: value.Err().Error()}}
	}

	if err := v.schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		var errs ValidationErrors
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			field := strings.Join(e.Path(), ".")
			if field == "" {
				field = filename
			}
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
		}
		return errs
	}

	return nil
}

// ValidateFile validates the configuration file at path: first its shape
// against the schema, then its option defaults against the compatibility
// rules.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return oerrors.NewNotFoundError("configuration file not found", path,
				"Run 'fsgen config init' to create the default configuration.")
		}
		return oerrors.NewIOError("reading config file", path, err)
	}

	if err := v.Validate(path, data); err != nil {
		return err
	}

	cfg, err := NewLoader().Load(path)
	if err != nil {
		return err
	}

	if _, err := cfg.Baseline(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	return nil
}
