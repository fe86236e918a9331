package jsonld

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for build-time validation failures.
// These errors can be used with errors.Is() for error checking.
//
// Structural misuse is the only thing that fails: unknown subgraph roots,
// unresolved references, and filter criteria that match nothing silently
// yield empty results instead. Filters narrow, they never fail.
var (
	// ErrMissingBaseGraph indicates that no base graph was supplied before
	// running the pipeline.
	ErrMissingBaseGraph = errors.New("missing base graph")

	// ErrInvalidBaseGraph indicates that the supplied base graph is not an
	// entity sequence.
	ErrInvalidBaseGraph = errors.New("invalid base graph")

	// ErrInvalidMaxEntities indicates that a maximum entity count below 1
	// was configured.
	ErrInvalidMaxEntities = errors.New("max entities must be at least 1")
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents errors raised by configuration validation.
	KindValidation = "validation"

	// KindConfiguration represents errors raised while loading or merging
	// configuration from external sources.
	KindConfiguration = "configuration"

	// KindNotFound represents errors where a requested entity or named
	// configuration was not found.
	KindNotFound = "not_found"

	// KindInternal represents internal engine errors.
	KindInternal = "internal"
)

// Error is a structured error that wraps an underlying error with the
// operation that failed and the category of failure.
//
// Error implements the error interface and supports unwrapping, making it
// compatible with errors.Is() and errors.As().
type Error struct {
	// Op is the operation that failed (e.g., "Builder.Graph").
	Op string

	// Kind categorizes the error (e.g., KindValidation).
	Kind string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("jsonld: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("jsonld: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and
// errors.As() to work with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind (and Op when the target names one), or
// delegates to the underlying error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}

// NewNotFoundError creates a new Error with KindNotFound.
func NewNotFoundError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindNotFound, Err: err}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindInternal, Err: err}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g.,
// "document store", "preset registry"). If logger is nil, slog.Default()
// is used.
//
// Example usage:
//
//	defer jsonld.CloseWithLog(store, logger, "document store")
//	defer jsonld.CloseWithLog(registry, logger, "preset registry")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
