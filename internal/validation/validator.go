// =============================================================================
// Order Form Builder - Validation Engine
// =============================================================================
//
// This module validates parsed order rows against the fixed field schema and
// the purchasing office's business rules. It produces structured diagnostics
// for display; it never returns a Go error for bad data.
//
// VALIDATION STRATEGY:
//   For every row, every schema field is checked in schema order:
//   1. Required check: an empty required field is an error and no further
//      checks run for that field
//   2. Type check: number, url or string rules. Numbers must also fit in
//      int64 cents, so no later total can wrap around
//   3. Field rules: whole-number quantity, zero sales tax
//
// SEVERITY:
//   - "error"   : blocks submission (ValidationResult.IsValid becomes false)
//   - "warning" : advisory only, never affects IsValid
//
// =============================================================================

package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/order-form-builder/internal/fields"
	"github.com/ginjaninja78/order-form-builder/internal/money"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Severity is the severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rule names recorded on each diagnostic.
const (
	RuleRequired    = "required"
	RuleNumber      = "number"
	RuleNonNegative = "non_negative"
	RuleRange       = "range"
	RuleURL         = "url"
	RuleMaxLength   = "max_length"
	RuleWholeNumber = "whole_number"
	RuleSalesTax    = "sales_tax"
)

// ValidationError represents a single diagnostic for one field of one row.
type ValidationError struct {
	// ID is unique per diagnostic instance.
	ID string

	// Severity is either SeverityError or SeverityWarning.
	Severity Severity

	// Row is the 1-based row number.
	Row int

	// Field is the label of the column that failed validation.
	Field string

	// Value is the raw value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] Row %d, Field '%s': %s (value: '%s')",
		strings.ToUpper(string(e.Severity)),
		e.Row,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validating a whole dataset.
type ValidationResult struct {
	// IsValid is true exactly when Errors is empty.
	IsValid bool

	// Errors contains every error-severity diagnostic.
	Errors []*ValidationError

	// Warnings contains every warning-severity diagnostic.
	Warnings []*ValidationError

	// ValidRowCount is the number of rows with no error-severity diagnostics.
	ValidRowCount int

	// TotalRowCount is the number of rows validated.
	TotalRowCount int
}

// All returns errors followed by warnings.
func (r *ValidationResult) All() []*ValidationError {
	all := make([]*ValidationError, 0, len(r.Errors)+len(r.Warnings))
	all = append(all, r.Errors...)
	return append(all, r.Warnings...)
}

// =============================================================================
// ID GENERATION
// =============================================================================

// IDGenerator produces diagnostic IDs.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUIDs.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// =============================================================================
// VALIDATOR
// =============================================================================

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// MaxStringLength is the length above which a string field is flagged.
	// Default: 500
	MaxStringLength int

	// IDs generates diagnostic IDs.
	// Default: UUIDGenerator
	IDs IDGenerator
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		MaxStringLength: 500,
		IDs:             UUIDGenerator{},
	}
}

// Validator validates parsed rows. It holds no per-run state and is safe for
// concurrent use.
type Validator struct {
	options ValidationOptions
}

// NewValidator creates a new Validator with default options.
func NewValidator() *Validator {
	return NewValidatorWithOptions(DefaultValidationOptions())
}

// NewValidatorWithOptions creates a new Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	defaults := DefaultValidationOptions()
	if options.MaxStringLength <= 0 {
		options.MaxStringLength = defaults.MaxStringLength
	}
	if options.IDs == nil {
		options.IDs = defaults.IDs
	}
	return &Validator{options: options}
}

// nonNegativeFields are the monetary and quantity fields that may not be negative.
var nonNegativeFields = map[fields.Index]bool{
	fields.PricePerUnit:        true,
	fields.Quantity:            true,
	fields.Tax:                 true,
	fields.ShippingAndHandling: true,
	fields.Total:               true,
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate validates every row with a default Validator.
func Validate(rows []fields.ParsedRow) *ValidationResult {
	return NewValidator().Validate(rows)
}

// Validate validates all rows and returns the dataset verdict.
//
// PARAMETERS:
//   - rows: The parsed rows, in input order.
//
// RETURNS:
//   - The validation result. Errors and Warnings are ordered by row, then by
//     schema field order.
func (v *Validator) Validate(rows []fields.ParsedRow) *ValidationResult {
	result := &ValidationResult{
		Errors:        make([]*ValidationError, 0),
		Warnings:      make([]*ValidationError, 0),
		TotalRowCount: len(rows),
	}

	for _, row := range rows {
		rowIsValid := true

		for _, spec := range fields.Specs {
			for _, diag := range v.ValidateField(row.Number, row.Get(spec.Index), spec) {
				if diag.Severity == SeverityError {
					result.Errors = append(result.Errors, diag)
					rowIsValid = false
				} else {
					result.Warnings = append(result.Warnings, diag)
				}
			}
		}

		if rowIsValid {
			result.ValidRowCount++
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// ValidateField validates a single value against its field spec.
//
// PARAMETERS:
//   - rowNumber: The 1-based row number recorded on diagnostics.
//   - value: The raw field value.
//   - spec: The schema entry of the field.
//
// RETURNS:
//   - The diagnostics for this field, possibly none.
func (v *Validator) ValidateField(rowNumber int, value string, spec fields.Spec) []*ValidationError {
	var diags []*ValidationError

	report := func(severity Severity, rule, message string) {
		diags = append(diags, &ValidationError{
			ID:       v.options.IDs.NewID(),
			Severity: severity,
			Row:      rowNumber,
			Field:    spec.Label,
			Value:    value,
			Rule:     rule,
			Message:  message,
		})
	}

	trimmed := strings.TrimSpace(value)

	// =========================================================================
	// REQUIRED FIELD VALIDATION
	// =========================================================================

	if trimmed == "" {
		if spec.Required {
			report(SeverityError, RuleRequired,
				fmt.Sprintf("Required field %q is empty", spec.Label))
		}
		return diags
	}

	// =========================================================================
	// DATA TYPE VALIDATION
	// =========================================================================

	var (
		number   decimal.Decimal
		isNumber bool
	)

	switch spec.Type {
	case fields.TypeNumber:
		d, err := money.ParseDecimal(trimmed)
		if err != nil {
			report(SeverityError, RuleNumber,
				fmt.Sprintf("%q must be a valid number", spec.Label))
			break
		}
		if _, err := money.ToCents(d); err != nil {
			report(SeverityError, RuleRange,
				fmt.Sprintf("%q is out of range", spec.Label))
			break
		}
		number, isNumber = d, true
		if d.IsNegative() && nonNegativeFields[spec.Index] {
			report(SeverityError, RuleNonNegative,
				fmt.Sprintf("%q cannot be negative", spec.Label))
		}

	case fields.TypeURL:
		if !IsValidURL(trimmed) {
			report(SeverityWarning, RuleURL,
				fmt.Sprintf("%q must be a valid URL", spec.Label))
		}

	case fields.TypeString:
		if utf8.RuneCountInString(trimmed) > v.options.MaxStringLength {
			report(SeverityWarning, RuleMaxLength,
				fmt.Sprintf("%q is too long (max %d characters)", spec.Label, v.options.MaxStringLength))
		}
	}

	// =========================================================================
	// FIELD-SPECIFIC RULES
	// =========================================================================

	if !isNumber {
		return diags
	}

	switch spec.Index {
	case fields.Quantity:
		if !number.IsInteger() {
			report(SeverityWarning, RuleWholeNumber,
				fmt.Sprintf("%q should be a whole number", spec.Label))
		}
	case fields.Tax:
		if !number.IsZero() {
			report(SeverityWarning, RuleSalesTax,
				fmt.Sprintf("%q has a non-zero value. ECS does not pay sales tax so this should be zero or empty.", spec.Label))
		}
	}

	return diags
}

// =============================================================================
// TYPE HELPERS
// =============================================================================

// IsValidURL reports whether value parses as an absolute URL, either as-is or
// with an "https://" prefix when it carries no scheme separator.
func IsValidURL(value string) bool {
	if isAbsoluteURL(value) {
		return true
	}
	if strings.Contains(value, "://") {
		return false
	}
	return isAbsoluteURL("https://" + value)
}

func isAbsoluteURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}
