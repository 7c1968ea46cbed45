package converter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/order-form-builder/internal/fields"
)

func widgetRow() fields.ParsedRow {
	return fields.NewRow(1, map[fields.Index]string{
		fields.Name:                "Widget",
		fields.Vendor:              "Acme",
		fields.PartNumber:          "P-100",
		fields.Link:                "https://example.com/widget",
		fields.PricePerUnit:        "$10.00",
		fields.Quantity:            "3",
		fields.ShippingAndHandling: "$2.50",
		fields.DeliveryType:        "Ground",
		fields.Notes:               "Fragile",
	})
}

func TestTransformRow_Widget(t *testing.T) {
	item, err := TransformRow(widgetRow())
	require.NoError(t, err)

	assert.Equal(t, "Widget (P-100)", item.Name)
	assert.Equal(t, "Acme", item.Vendor)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "https://example.com/widget", item.URL)
	assert.Equal(t, int64(1000), item.PricePerUnitCents)
	assert.Equal(t, int64(250), item.ShippingAndHandlingCents)
	assert.Equal(t, "Part #: P-100 | Delivery: Ground | Notes: Fragile", item.Notes)
	assert.Equal(t, 1, item.SourceRow)
	total, err := item.TotalCents()
	require.NoError(t, err)
	assert.Equal(t, int64(3250), total)
}

func TestTransformRow_Values(t *testing.T) {
	tests := []struct {
		name      string
		idx       fields.Index
		value     string
		wantName  string
		wantQty   int
		wantPrice int64
		wantShip  int64
		wantNotes string
	}{
		{"no part number", fields.PartNumber, "", "Widget", 3, 1000, 250, "Delivery: Ground | Notes: Fragile"},
		{"empty quantity means one", fields.Quantity, "", "Widget (P-100)", 1, 1000, 250, "Part #: P-100 | Delivery: Ground | Notes: Fragile"},
		{"fractional quantity keeps integer part", fields.Quantity, "2.7", "Widget (P-100)", 2, 1000, 250, "Part #: P-100 | Delivery: Ground | Notes: Fragile"},
		{"price rounds half up", fields.PricePerUnit, "1.005", "Widget (P-100)", 3, 101, 250, "Part #: P-100 | Delivery: Ground | Notes: Fragile"},
		{"price with thousands separator", fields.PricePerUnit, "$1,234.56", "Widget (P-100)", 3, 123456, 250, "Part #: P-100 | Delivery: Ground | Notes: Fragile"},
		{"empty shipping", fields.ShippingAndHandling, "", "Widget (P-100)", 3, 1000, 0, "Part #: P-100 | Delivery: Ground | Notes: Fragile"},
		{"tax is noted", fields.Tax, "0.83", "Widget (P-100)", 3, 1000, 250, "Part #: P-100 | Delivery: Ground | Tax: $0.83 | Notes: Fragile"},
		{"zero tax is not noted", fields.Tax, "0", "Widget (P-100)", 3, 1000, 250, "Part #: P-100 | Delivery: Ground | Notes: Fragile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := widgetRow()
			row.Values[tt.idx] = tt.value

			item, err := TransformRow(row)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, item.Name)
			assert.Equal(t, tt.wantQty, item.Quantity)
			assert.Equal(t, tt.wantPrice, item.PricePerUnitCents)
			assert.Equal(t, tt.wantShip, item.ShippingAndHandlingCents)
			assert.Equal(t, tt.wantNotes, item.Notes)
		})
	}
}

func TestTransformRow_NoAnnotationsMeansNoNotes(t *testing.T) {
	row := fields.NewRow(4, map[fields.Index]string{
		fields.Name:         "Bolt",
		fields.Vendor:       "Acme",
		fields.Link:         "https://example.com/bolt",
		fields.PricePerUnit: "0.15",
		fields.Quantity:     "10",
	})

	item, err := TransformRow(row)
	require.NoError(t, err)
	assert.Empty(t, item.Notes)
}

func TestTransformRow_Errors(t *testing.T) {
	tests := []struct {
		name   string
		idx    fields.Index
		value  string
		reason string
	}{
		{"missing name", fields.Name, " ", msgMissingRequired},
		{"missing vendor", fields.Vendor, "", msgMissingRequired},
		{"missing price", fields.PricePerUnit, "", msgMissingRequired},
		{"bad price", fields.PricePerUnit, "ten", msgMissingRequired},
		{"zero quantity", fields.Quantity, "0", msgMissingRequired},
		{"negative quantity", fields.Quantity, "-2", msgMissingRequired},
		{"fraction below one", fields.Quantity, "0.5", msgMissingRequired},
		{"bad shipping", fields.ShippingAndHandling, "free", msgInvalidShipping},
		{"huge negative quantity", fields.Quantity, "-1e400", msgMissingRequired},
		{"price 1e20", fields.PricePerUnit, "1e20", "Price per Unit is out of range"},
		{"price 1e400", fields.PricePerUnit, "1e400", "Price per Unit is out of range"},
		{"quantity 1e20", fields.Quantity, "1e20", "Quantity is out of range"},
		{"quantity 1e400", fields.Quantity, "1e400", "Quantity is out of range"},
		{"shipping 1e20", fields.ShippingAndHandling, "1e20", "S&H is out of range"},
		{"line total overflows", fields.Quantity, "1e16", "Line total is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := widgetRow()
			row.Number = 7
			row.Values[tt.idx] = tt.value

			_, err := TransformRow(row)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTransform))

			var te *TransformError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, 7, te.Row)
			assert.Equal(t, tt.reason, te.Reason)
			assert.Equal(t, "Row 7: "+tt.reason, err.Error())
		})
	}
}

func TestTransformRows_IsolatesFailures(t *testing.T) {
	bad := widgetRow()
	bad.Number = 2
	bad.Values[fields.Vendor] = ""

	good := widgetRow()
	good.Number = 3
	good.Values[fields.Name] = "Gear"
	good.Values[fields.PartNumber] = ""

	items, errs := TransformRows([]fields.ParsedRow{widgetRow(), bad, good})

	require.Len(t, items, 2)
	assert.Equal(t, "Widget (P-100)", items[0].Name)
	assert.Equal(t, "Gear", items[1].Name)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "Row 2: "+msgMissingRequired)
}

func TestCleanAmazonURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.amazon.com/dp/B000?tag=x&ref=y#reviews", "https://www.amazon.com/dp/B000"},
		{"https://amazon.com/dp/B000?th=1", "https://amazon.com/dp/B000"},
		{"https://WWW.AMAZON.COM/dp/B000?th=1", "https://WWW.AMAZON.COM/dp/B000"},
		{"https://smile.amazon.com/dp/B000?th=1", "https://smile.amazon.com/dp/B000?th=1"},
		{"https://example.com/item?id=4", "https://example.com/item?id=4"},
		{"https://amazon.com", "https://amazon.com/"},
		{"https://www.amazon.com?tag=x", "https://www.amazon.com/"},
		{"amazon.com/dp/B000?th=1", "amazon.com/dp/B000?th=1"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanAmazonURL(tt.in))
		})
	}
}
