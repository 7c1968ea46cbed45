// =============================================================================
// Order Form Builder - Shared Types
// =============================================================================
//
// This package contains the canonical order records shared by the pipeline
// stages. Keeping them here avoids import cycles between:
//   - converter   (produces line items and vendor groups)
//   - pdfwriter   (consumes vendor groups, produces generated documents)
//   - spreadsheet (exports overflow line items)
//   - automation  (serializes line items for the form-automation sidecar)
//
// MONEY:
//   All monetary values are integer cents. Dollar strings only exist at the
//   edges (parsing pasted text, rendering documents). Totals are computed
//   with overflow checks and fail instead of wrapping.
//
// =============================================================================

package types

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/order-form-builder/internal/money"
)

// =============================================================================
// LINE ITEM TYPES
// =============================================================================

// OrderLineItem is one validated purchase request entry.
type OrderLineItem struct {
	// Name is the display name. A non-empty part number is appended in
	// parentheses by the transformer.
	Name string `json:"name"`

	// Vendor is the trimmed vendor string used as the grouping key.
	Vendor string `json:"vendor"`

	// Quantity is always greater than zero.
	Quantity int `json:"quantity"`

	// URL is the product link, canonicalized for recognized retailers.
	URL string `json:"url"`

	// PricePerUnitCents is the unit price in cents.
	PricePerUnitCents int64 `json:"pricePerUnitCents"`

	// ShippingAndHandlingCents is the shipping cost in cents for the whole line.
	ShippingAndHandlingCents int64 `json:"shippingAndHandlingCents"`

	// Notes is the pipe-delimited annotation string. Empty means no notes.
	Notes string `json:"notes,omitempty"`

	// SourceRow is the 1-based input row this item came from.
	SourceRow int `json:"-"`
}

// TotalCents returns price * quantity + shipping for a single line, or
// money.ErrOutOfRange when that does not fit in int64 cents.
func (i OrderLineItem) TotalCents() (int64, error) {
	return money.LineTotal(i.PricePerUnitCents, i.Quantity, i.ShippingAndHandlingCents)
}

// TotalCents sums the line totals of the given items.
func TotalCents(items []OrderLineItem) (int64, error) {
	totals := make([]int64, len(items))
	for i, item := range items {
		total, err := item.TotalCents()
		if err != nil {
			return 0, fmt.Errorf("line total of %q: %w", item.Name, err)
		}
		totals[i] = total
	}
	total, err := money.Sum(totals...)
	if err != nil {
		return 0, fmt.Errorf("order total: %w", err)
	}
	return total, nil
}

// =============================================================================
// GROUPING TYPES
// =============================================================================

// VendorGroup holds the line items destined for a single supplier.
type VendorGroup struct {
	// Vendor is the exact grouping key.
	Vendor string

	// Items keeps the order in which the items appeared in the input.
	Items []OrderLineItem
}

// =============================================================================
// OUTPUT TYPES
// =============================================================================

// GeneratedDocument is one merged purchase-order PDF for one vendor.
type GeneratedDocument struct {
	Vendor      string
	PDF         []byte
	ItemCount   int
	Filename    string
	RequestDate time.Time
}
