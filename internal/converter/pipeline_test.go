package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/order-form-builder/internal/clipboard"
	"github.com/ginjaninja78/order-form-builder/internal/validation"
)

const widgetLine = "Widget\tAcme\tP-100\thttps://example.com/widget\t$10.00\t3\t\t$2.50\t\tGround\tFragile"

func TestPrepare_Ready(t *testing.T) {
	parse := clipboard.Parse(widgetLine + "\n" + "Gear\tDigikey\t\thttps://example.com/gear\t4\t2\t\t\t\t\t")

	prepared := Prepare(parse, validation.NewValidator())

	require.True(t, prepared.Ready())
	require.Len(t, prepared.Items, 2)
	assert.Equal(t, "Widget (P-100)", prepared.Items[0].Name)
	assert.Equal(t, "Gear", prepared.Items[1].Name)
	assert.Empty(t, prepared.RowErrors)
}

func TestPrepare_StructuralErrorStops(t *testing.T) {
	prepared := Prepare(clipboard.Parse("   "), nil)

	assert.False(t, prepared.Ready())
	assert.Nil(t, prepared.Validation)
	assert.Empty(t, prepared.Items)
}

func TestPrepare_ValidationErrorStops(t *testing.T) {
	parse := clipboard.Parse("Widget\t\tP-100\thttps://example.com/widget\t$10.00\t3")

	prepared := Prepare(parse, nil)

	assert.False(t, prepared.Ready())
	require.NotNil(t, prepared.Validation)
	assert.False(t, prepared.Validation.IsValid)
	assert.Empty(t, prepared.Items)
}

func TestPrepare_WarningsDoNotBlock(t *testing.T) {
	parse := clipboard.Parse("Widget\tAcme\t\tnot a url\t$10.00\t1.5\t0.50")

	prepared := Prepare(parse, nil)

	require.True(t, prepared.Ready())
	assert.NotEmpty(t, parse.Warnings)
	assert.Len(t, prepared.Validation.Warnings, 3)
	require.Len(t, prepared.Items, 1)
	assert.Equal(t, 1, prepared.Items[0].Quantity)
}

func TestPrepare_OutOfRangeAmounts(t *testing.T) {
	t.Run("huge price is a validation error", func(t *testing.T) {
		prepared := Prepare(clipboard.Parse("Widget\tAcme\t\thttps://example.com/widget\t1e20\t100000"), nil)

		assert.False(t, prepared.Ready())
		require.NotNil(t, prepared.Validation)
		assert.False(t, prepared.Validation.IsValid)
		assert.Empty(t, prepared.Items)
	})

	t.Run("overflowing line total is a row error", func(t *testing.T) {
		prepared := Prepare(clipboard.Parse("Widget\tAcme\t\thttps://example.com/widget\t$10.00\t1e16"), nil)

		assert.False(t, prepared.Ready())
		assert.True(t, prepared.Validation.IsValid)
		require.Len(t, prepared.RowErrors, 1)
		assert.EqualError(t, prepared.RowErrors[0], "Row 1: Line total is out of range")
	})

	t.Run("overflowing order total fails the item checks", func(t *testing.T) {
		line := "Widget\tAcme\t\thttps://example.com/widget\t46116860184273879.04\t1"
		prepared := Prepare(clipboard.Parse(line+"\n"+line), nil)

		assert.False(t, prepared.Ready())
		require.Len(t, prepared.Items, 2)
		assert.False(t, prepared.ItemChecks.IsValid)
		assert.Equal(t, []string{"Order total is out of range"}, prepared.ItemChecks.Errors)
	})
}
