package automation

import (
	"fmt"

	"github.com/ginjaninja78/order-form-builder/internal/money"
	"github.com/ginjaninja78/order-form-builder/internal/types"
)

// SplitForForm flattens groups in group order and cuts the list at limit.
// The first slice goes on the online form, the second into the
// remaining-items spreadsheet. A limit below one keeps everything on the form.
func SplitForForm(groups []types.VendorGroup, limit int) (form, remaining []types.OrderLineItem) {
	for _, g := range groups {
		form = append(form, g.Items...)
	}
	if limit < 1 || len(form) <= limit {
		return form, nil
	}
	return form[:limit:limit], form[limit:]
}

// FormLine is one item row as the online form shows it.
type FormLine struct {
	Index    int
	Name     string
	URL      string
	Price    string
	Quantity int
	Total    string
}

// FormLines renders items the way the sidecar types them into the form:
// notes ride along in the name as "[NOTE: ...]" and prices are dollars.
// It fails when a line total does not fit in int64 cents.
func FormLines(items []types.OrderLineItem) ([]FormLine, error) {
	lines := make([]FormLine, len(items))
	for i, item := range items {
		total, err := item.TotalCents()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		name := item.Name
		if item.Notes != "" {
			name = fmt.Sprintf("%s [NOTE: %s]", item.Name, item.Notes)
		}
		lines[i] = FormLine{
			Index:    i + 1,
			Name:     name,
			URL:      item.URL,
			Price:    money.FormatCents(item.PricePerUnitCents),
			Quantity: item.Quantity,
			Total:    money.FormatCents(total),
		}
	}
	return lines, nil
}
