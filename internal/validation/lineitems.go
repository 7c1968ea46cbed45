package validation

import (
	"fmt"

	"github.com/ginjaninja78/order-form-builder/internal/types"
)

// LineItemResult is the outcome of checking transformed line items before
// document assembly.
type LineItemResult struct {
	IsValid bool
	Errors  []string
}

// ValidateLineItems checks that transformed items are fit for document
// assembly. Items are numbered from 1 in the order given. Every line total
// and the order total must fit in int64 cents.
func ValidateLineItems(items []types.OrderLineItem) LineItemResult {
	errs := make([]string, 0)
	totalsFit := true

	for i, item := range items {
		n := i + 1
		if item.Name == "" {
			errs = append(errs, fmt.Sprintf("Item %d: Missing name", n))
		}
		if item.Vendor == "" {
			errs = append(errs, fmt.Sprintf("Item %d: Missing vendor", n))
		}
		if item.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("Item %d: Quantity must be greater than 0", n))
		}
		if item.PricePerUnitCents < 0 {
			errs = append(errs, fmt.Sprintf("Item %d: Price cannot be negative", n))
		}
		if item.ShippingAndHandlingCents < 0 {
			errs = append(errs, fmt.Sprintf("Item %d: Shipping cost cannot be negative", n))
		}
		if _, err := item.TotalCents(); err != nil {
			errs = append(errs, fmt.Sprintf("Item %d: Line total is out of range", n))
			totalsFit = false
		}
	}

	if totalsFit {
		if _, err := types.TotalCents(items); err != nil {
			errs = append(errs, "Order total is out of range")
		}
	}

	return LineItemResult{IsValid: len(errs) == 0, Errors: errs}
}
