// Package validation provides input validation utilities for dataset loading,
// filter selections and configuration. Validators are small reusable values
// that can be combined with CompoundValidator and report failures as
// *errors.DashboardError.
package validation

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/paveg/salarydash/internal/errors"
)

// Validator interface for input validation
type Validator interface {
	Validate() error
}

// ColumnProvider interface for types that provide column information
type ColumnProvider interface {
	HasColumn(name string) bool
	Columns() []string
}

// ColumnValidator validates column existence
type ColumnValidator struct {
	provider ColumnProvider
	columns  []string
	op       string
}

// NewColumnValidator creates a validator that requires every named column
func NewColumnValidator(provider ColumnProvider, op string, columns ...string) *ColumnValidator {
	return &ColumnValidator{
		provider: provider,
		columns:  columns,
		op:       op,
	}
}

// Validate checks if all columns exist in the provider
func (v *ColumnValidator) Validate() error {
	for _, column := range v.columns {
		if !v.provider.HasColumn(column) {
			return errors.NewColumnNotFoundError(v.op, column)
		}
	}
	return nil
}

// KeyValidator validates that every key belongs to an allowed set
type KeyValidator struct {
	keys    []string
	allowed []string
	op      string
}

// NewKeyValidator creates a validator for caller-supplied keys such as filter names
func NewKeyValidator(op string, allowed []string, keys ...string) *KeyValidator {
	return &KeyValidator{
		keys:    keys,
		allowed: allowed,
		op:      op,
	}
}

// Validate checks every key against the allowed set
func (v *KeyValidator) Validate() error {
	for _, key := range v.keys {
		if !slices.Contains(v.allowed, key) {
			message := fmt.Sprintf("unknown column %q (expected one of %s)", key, strings.Join(v.allowed, ", "))
			return errors.NewInvalidInputError(v.op, message)
		}
	}
	return nil
}

// IntegerValidator validates that every value parses as a base-10 integer
type IntegerValidator struct {
	column string
	values []string
	op     string
}

// NewIntegerValidator creates a validator for integer-typed column values
func NewIntegerValidator(op, column string, values ...string) *IntegerValidator {
	return &IntegerValidator{
		column: column,
		values: values,
		op:     op,
	}
}

// Validate checks each value
func (v *IntegerValidator) Validate() error {
	for _, value := range v.values {
		if _, err := strconv.Atoi(strings.TrimSpace(value)); err != nil {
			return errors.NewValidationError(v.op, v.column, fmt.Sprintf("%q is not an integer", value))
		}
	}
	return nil
}

// PositiveValidator validates that a setting is strictly positive
type PositiveValidator struct {
	name  string
	value int
	op    string
}

// NewPositiveValidator creates a validator for count-like settings
func NewPositiveValidator(op, name string, value int) *PositiveValidator {
	return &PositiveValidator{
		name:  name,
		value: value,
		op:    op,
	}
}

// Validate checks the value is > 0
func (v *PositiveValidator) Validate() error {
	if v.value <= 0 {
		return errors.NewValidationError(v.op, "", fmt.Sprintf("%s must be positive, got %d", v.name, v.value))
	}
	return nil
}

// NonNegativeValidator validates a numeric measure is not below zero
type NonNegativeValidator struct {
	column string
	value  float64
	line   int
	op     string
}

// NewNonNegativeValidator creates a validator for a numeric cell
func NewNonNegativeValidator(op, column string, line int, value float64) *NonNegativeValidator {
	return &NonNegativeValidator{
		column: column,
		value:  value,
		line:   line,
		op:     op,
	}
}

// Validate checks the value is finite and >= 0
func (v *NonNegativeValidator) Validate() error {
	if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
		value := strconv.FormatFloat(v.value, 'g', -1, 64)
		return errors.NewMalformedValueError(v.op, v.column, v.line, value, fmt.Errorf("%s is not finite", value))
	}
	if v.value < 0 {
		message := fmt.Sprintf("negative value %g at line %d", v.value, v.line)
		return errors.NewValidationError(v.op, v.column, message)
	}
	return nil
}

// WholeNumberValidator validates a numeric cell holds an integer that fits
// in 32 bits, such as a year read from a floating point column
type WholeNumberValidator struct {
	column string
	value  float64
	line   int
	op     string
}

// NewWholeNumberValidator creates a validator for an integer-typed numeric cell
func NewWholeNumberValidator(op, column string, line int, value float64) *WholeNumberValidator {
	return &WholeNumberValidator{
		column: column,
		value:  value,
		line:   line,
		op:     op,
	}
}

// Validate checks the value is integral and within int32
func (v *WholeNumberValidator) Validate() error {
	value := strconv.FormatFloat(v.value, 'g', -1, 64)
	if v.value != math.Trunc(v.value) || math.IsInf(v.value, 0) {
		return errors.NewMalformedValueError(v.op, v.column, v.line, value, fmt.Errorf("%s is not a whole number", value))
	}
	if v.value < math.MinInt32 || v.value > math.MaxInt32 {
		return errors.NewMalformedValueError(v.op, v.column, v.line, value, fmt.Errorf("%s is out of range", value))
	}
	return nil
}

// CompoundValidator combines multiple validators
type CompoundValidator struct {
	validators []Validator
}

// NewCompoundValidator creates a validator that checks multiple conditions
func NewCompoundValidator(validators ...Validator) *CompoundValidator {
	return &CompoundValidator{
		validators: validators,
	}
}

// Validate runs all validators and returns the first error encountered
func (v *CompoundValidator) Validate() error {
	for _, validator := range v.validators {
		if err := validator.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Convenience validation functions

// ValidateColumns is a convenience function for column validation
func ValidateColumns(provider ColumnProvider, op string, columns ...string) error {
	return NewColumnValidator(provider, op, columns...).Validate()
}

// ValidateKeys is a convenience function for key validation
func ValidateKeys(op string, allowed []string, keys ...string) error {
	return NewKeyValidator(op, allowed, keys...).Validate()
}

// ValidateIntegers is a convenience function for integer validation
func ValidateIntegers(op, column string, values ...string) error {
	return NewIntegerValidator(op, column, values...).Validate()
}
