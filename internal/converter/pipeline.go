package converter

import (
	"github.com/ginjaninja78/order-form-builder/internal/clipboard"
	"github.com/ginjaninja78/order-form-builder/internal/types"
	"github.com/ginjaninja78/order-form-builder/internal/validation"
)

// Prepared is the outcome of the pre-generation stages for one submission.
type Prepared struct {
	Parse      *clipboard.ParseResult
	Validation *validation.ValidationResult

	// Items holds the line items of rows that transformed.
	Items []types.OrderLineItem

	// RowErrors holds one TransformError per row that did not transform.
	RowErrors []error

	// ItemChecks re-checks the transformed items.
	ItemChecks validation.LineItemResult
}

// Ready reports whether the submission can go on to document generation:
// no structural parse errors, no error-severity diagnostics, no transform
// failures, and at least one line item that passes the item checks.
func (p *Prepared) Ready() bool {
	if p.Parse == nil || p.Parse.HasErrors() {
		return false
	}
	if p.Validation == nil || !p.Validation.IsValid {
		return false
	}
	return len(p.RowErrors) == 0 && len(p.Items) > 0 && p.ItemChecks.IsValid
}

// Prepare validates and transforms an already parsed submission. Rows are
// only transformed when parsing and validation found no blocking errors.
func Prepare(parse *clipboard.ParseResult, validator *validation.Validator) *Prepared {
	if validator == nil {
		validator = validation.NewValidator()
	}

	prepared := &Prepared{Parse: parse}
	if parse.HasErrors() {
		return prepared
	}

	prepared.Validation = validator.Validate(parse.Rows)
	if !prepared.Validation.IsValid {
		return prepared
	}

	prepared.Items, prepared.RowErrors = TransformRows(parse.Rows)
	prepared.ItemChecks = validation.ValidateLineItems(prepared.Items)
	return prepared
}
