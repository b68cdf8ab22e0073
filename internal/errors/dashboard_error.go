// Package errors provides standardized error types for dataset loading,
// filtering and export. DashboardError carries the failing operation, the
// column involved (when there is one) and an optional wrapped cause.
package errors

import (
	"fmt"
)

// DashboardError represents standardized errors across all dashboard operations
type DashboardError struct {
	Op      string // Operation name (e.g., "Load", "ParseSelection", "Export")
	Column  string // Column name if applicable
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *DashboardError) Error() string {
	var msg string
	if e.Column != "" {
		msg = fmt.Sprintf("%s failed on column '%s': %s", e.Op, e.Column, e.Message)
	} else {
		msg = fmt.Sprintf("%s failed: %s", e.Op, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error wrapping support
func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is()
func (e *DashboardError) Is(target error) bool {
	if de, ok := target.(*DashboardError); ok {
		return e.Op == de.Op && e.Column == de.Column && e.Message == de.Message
	}
	return false
}

// NewLoadError creates an error for a data source that could not be read.
func NewLoadError(source string, cause error) *DashboardError {
	return &DashboardError{
		Op:      "Load",
		Message: fmt.Sprintf("cannot read data source %q", source),
		Cause:   cause,
	}
}

// NewColumnNotFoundError creates an error for operations on non-existent columns
func NewColumnNotFoundError(op, column string) *DashboardError {
	return &DashboardError{
		Op:      op,
		Column:  column,
		Message: "column does not exist",
	}
}

// NewMalformedValueError creates an error for a cell that does not parse as its column type.
func NewMalformedValueError(op, column string, line int, value string, cause error) *DashboardError {
	return &DashboardError{
		Op:      op,
		Column:  column,
		Message: fmt.Sprintf("malformed value %q at line %d", value, line),
		Cause:   cause,
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *DashboardError {
	return &DashboardError{
		Op:      op,
		Message: message,
	}
}

// NewValidationError creates an error for input validation failures
func NewValidationError(op, column, message string) *DashboardError {
	return &DashboardError{
		Op:      op,
		Column:  column,
		Message: message,
	}
}

// NewUnsupportedFormatError creates an error for an unknown source or export format.
func NewUnsupportedFormatError(op, format string) *DashboardError {
	return &DashboardError{
		Op:      op,
		Message: fmt.Sprintf("unsupported format: %s", format),
	}
}

// Predefined error variables for common cases
var (
	// ErrEmptySource indicates a data source with no header row
	ErrEmptySource = &DashboardError{
		Op:      "Load",
		Message: "data source is empty",
	}
)
