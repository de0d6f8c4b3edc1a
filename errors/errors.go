// Package errors provides standardized error handling for gafcheck
// components. It includes error classification, standard error variables,
// and helper functions for consistent error wrapping across the system.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorFatal represents load-time errors that abort the whole run
	// before any annotation record is processed
	ErrorFatal ErrorClass = iota
	// ErrorRecord represents structural per-record errors: the offending
	// record is skipped and the stream continues
	ErrorRecord
	// ErrorFinding represents semantic validation findings: recorded in
	// the report, never abort the stream
	ErrorFinding
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorFatal:
		return "fatal"
	case ErrorRecord:
		return "record"
	case ErrorFinding:
		return "finding"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Context resolver errors
	ErrUnknownPrefix   = errors.New("unknown curie prefix")
	ErrDuplicatePrefix = errors.New("duplicate curie prefix")

	// Ontology graph errors
	ErrOntologyLoad            = errors.New("ontology load failed")
	ErrUnknownTerm             = errors.New("term not in ontology")
	ErrUnresolvableDeprecation = errors.New("deprecated term has no usable replacement")
	ErrDanglingEdge            = errors.New("edge references unknown node")

	// Annotation stream errors
	ErrMalformedRecord = errors.New("malformed annotation record")
	ErrCommentLine     = errors.New("comment line")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("missing required configuration")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsFatal checks if an error should abort the run before streaming starts
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	return errors.Is(err, ErrUnknownPrefix) ||
		errors.Is(err, ErrDuplicatePrefix) ||
		errors.Is(err, ErrOntologyLoad) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig)
}

// IsRecord checks if an error is confined to a single annotation record
func IsRecord(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorRecord
	}

	return errors.Is(err, ErrMalformedRecord)
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if err == nil {
		return ErrorFinding
	}
	if IsFatal(err) {
		return ErrorFatal
	}
	if IsRecord(err) {
		return ErrorRecord
	}
	return ErrorFinding
}

// newClassified creates a new classified error.
// This is an internal helper - use WrapFatal() or WrapRecord() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}

// WrapRecord wraps an error as record-scoped with context
func WrapRecord(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorRecord, wrappedErr, component, method, wrappedErr.Error())
}
