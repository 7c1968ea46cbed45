// =============================================================================
// Order Form Builder - Line Item Transformer
// =============================================================================
//
// This module converts validated rows into canonical line items:
//   - currency strings become integer cents (rounded, never truncated)
//   - the part number is appended to the display name
//   - optional annotations are folded into one pipe-delimited notes string
//   - retailer tracking parameters are stripped from recognized product URLs
//
// A row missing a mandatory input fails with a TransformError. Callers decide
// whether one failed row aborts the batch; TransformRows isolates them.
//
// =============================================================================

package converter

import (
	"errors"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/ginjaninja78/order-form-builder/internal/fields"
	"github.com/ginjaninja78/order-form-builder/internal/money"
	"github.com/ginjaninja78/order-form-builder/internal/types"
)

const (
	msgMissingRequired = "Missing required fields (name, vendor, quantity, or price)"
	msgInvalidShipping = "Invalid S&H amount"
)

// =============================================================================
// ROW TRANSFORMATION
// =============================================================================

// TransformRow converts one parsed row into a line item.
//
// PARAMETERS:
//   - row: A parsed row, normally one that passed validation.
//
// RETURNS:
//   - The line item.
//   - A *TransformError if name, vendor, a positive quantity or a parseable
//     price is missing, a present S&H value cannot be parsed, or an amount
//     or the line total does not fit in int64 cents.
func TransformRow(row fields.ParsedRow) (types.OrderLineItem, error) {
	name := strings.TrimSpace(row.Get(fields.Name))
	vendor := strings.TrimSpace(row.Get(fields.Vendor))
	partNumber := strings.TrimSpace(row.Get(fields.PartNumber))
	link := strings.TrimSpace(row.Get(fields.Link))
	deliveryType := strings.TrimSpace(row.Get(fields.DeliveryType))
	notes := strings.TrimSpace(row.Get(fields.Notes))

	fail := func(reason string) (types.OrderLineItem, error) {
		return types.OrderLineItem{}, &TransformError{Row: row.Number, Reason: reason}
	}

	quantity, quantityErr := parseQuantity(row.Get(fields.Quantity))
	priceCents, priceErr := money.ParseCents(row.Get(fields.PricePerUnit))

	switch {
	case name == "" || vendor == "":
		return fail(msgMissingRequired)
	case outOfRange(quantityErr):
		return fail(fields.Quantity.Label() + " is out of range")
	case outOfRange(priceErr):
		return fail(fields.PricePerUnit.Label() + " is out of range")
	case quantityErr != nil || priceErr != nil:
		return fail(msgMissingRequired)
	}

	var shippingCents int64
	if raw := row.Get(fields.ShippingAndHandling); money.Clean(raw) != "" {
		cents, err := money.ParseCents(raw)
		if outOfRange(err) {
			return fail(fields.ShippingAndHandling.Label() + " is out of range")
		}
		if err != nil {
			return fail(msgInvalidShipping)
		}
		shippingCents = cents
	}

	// Tax is informational only; an unparseable value is simply left out.
	taxCents, _ := money.ParseCents(row.Get(fields.Tax))

	displayName := name
	if partNumber != "" {
		displayName += " (" + partNumber + ")"
	}

	item := types.OrderLineItem{
		Name:                     displayName,
		Vendor:                   vendor,
		Quantity:                 quantity,
		URL:                      CleanAmazonURL(link),
		PricePerUnitCents:        priceCents,
		ShippingAndHandlingCents: shippingCents,
		Notes:                    composeNotes(partNumber, deliveryType, taxCents, notes),
		SourceRow:                row.Number,
	}
	if _, err := item.TotalCents(); err != nil {
		return fail("Line total is out of range")
	}
	return item, nil
}

// TransformRows transforms every row, isolating failures.
//
// RETURNS:
//   - The line items of the rows that transformed, in input order.
//   - One error per failed row.
func TransformRows(rows []fields.ParsedRow) ([]types.OrderLineItem, []error) {
	items := make([]types.OrderLineItem, 0, len(rows))
	var errs []error

	for _, row := range rows {
		item, err := TransformRow(row)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}

	return items, errs
}

var errNoQuantity = errors.New("quantity must be at least one")

// parseQuantity returns the integer part of the quantity. An empty value
// means one unit. Zero, negative and unparseable values are rejected, and a
// quantity too large for an int fails with money.ErrOutOfRange.
func parseQuantity(raw string) (int, error) {
	if money.Clean(raw) == "" {
		return 1, nil
	}
	d, err := money.ParseDecimal(raw)
	if err != nil {
		return 0, err
	}
	whole := d.Truncate(0)
	if whole.Sign() <= 0 {
		return 0, errNoQuantity
	}
	if !whole.BigInt().IsInt64() || whole.IntPart() > math.MaxInt {
		return 0, money.ErrOutOfRange
	}
	return int(whole.IntPart()), nil
}

func outOfRange(err error) bool {
	return errors.Is(err, money.ErrOutOfRange)
}

// composeNotes joins the present annotations with " | ".
func composeNotes(partNumber, deliveryType string, taxCents int64, notes string) string {
	var parts []string
	if partNumber != "" {
		parts = append(parts, "Part #: "+partNumber)
	}
	if deliveryType != "" {
		parts = append(parts, "Delivery: "+deliveryType)
	}
	if taxCents > 0 {
		parts = append(parts, "Tax: "+money.FormatCents(taxCents))
	}
	if notes != "" {
		parts = append(parts, "Notes: "+notes)
	}
	return strings.Join(parts, " | ")
}

// =============================================================================
// URL CANONICALIZATION
// =============================================================================

var amazonHost = regexp.MustCompile(`^(www\.)?amazon\.com$`)

// CleanAmazonURL strips the query string and fragment from amazon.com product
// links. Any other value, including unparseable ones, is returned unchanged.
func CleanAmazonURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	if !amazonHost.MatchString(strings.ToLower(u.Hostname())) {
		return raw
	}

	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
	return u.String()
}
