package spreadsheet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-form-builder/internal/types"
)

func TestRemainingItemsFileName(t *testing.T) {
	assert.Equal(t, "Comet Robotics SumoBots remaining items.xlsx", RemainingItemsFileName("Comet Robotics", "SumoBots"))
	assert.Equal(t, "Chess Club remaining items.xlsx", RemainingItemsFileName("Chess Club", ""))
}

func TestExportRemainingItems(t *testing.T) {
	items := []types.OrderLineItem{
		{Name: "Widget (P-100)", Vendor: "Acme", Quantity: 3, URL: "https://example.com/w", PricePerUnitCents: 1000, ShippingAndHandlingCents: 250, Notes: "Part #: P-100"},
		{Name: "Bolt", Vendor: "Acme", Quantity: 10, URL: "https://example.com/b", PricePerUnitCents: 15},
	}

	export, err := ExportRemainingItems(items, "Comet Robotics", "VEX U")
	require.NoError(t, err)
	assert.Equal(t, "Comet Robotics VEX U remaining items.xlsx", export.Name)
	assert.Equal(t, MimeType, export.MimeType)

	rows, err := ReadRowsFrom(bytes.NewReader(export.Data), ReadOptions{Sheet: RemainingItemsSheet})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	n := len(RemainingItemsHeaders)
	assert.Equal(t, RemainingItemsHeaders, pad(rows[0], n))
	assert.Equal(t, []string{"Widget (P-100)", "Acme", "3", "https://example.com/w", "$10.00", "$2.50", "$32.50", "Part #: P-100"}, pad(rows[1], n))
	assert.Equal(t, []string{"Bolt", "Acme", "10", "https://example.com/b", "$0.15", "$0.00", "$1.50", ""}, pad(rows[2], n))

	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{RemainingItemsSheet}, f.GetSheetList())
}

func TestReadRows(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Name", "Vendor"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Widget", "Acme", "P-100"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]any{"Gear", "Digikey"}))

	path := filepath.Join(t.TempDir(), "order.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadRows(path, ReadOptions{SkipRows: 1})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Widget", "Acme", "P-100"}, {"Gear", "Digikey"}}, rows)
}

func TestReadRows_Errors(t *testing.T) {
	_, err := ReadRows(filepath.Join(t.TempDir(), "missing.xlsx"), ReadOptions{})
	assert.ErrorIs(t, err, ErrOpen)

	path := filepath.Join(t.TempDir(), "not.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))
	_, err = ReadRows(path, ReadOptions{})
	assert.ErrorIs(t, err, ErrOpen)

	export, err := ExportRemainingItems(nil, "Org", "")
	require.NoError(t, err)
	_, err = ReadRowsFrom(bytes.NewReader(export.Data), ReadOptions{Sheet: "Nope"})
	assert.ErrorIs(t, err, ErrNoSheet)
}

func TestReadRows_NegativeSkipRows(t *testing.T) {
	export, err := ExportRemainingItems(nil, "Org", "")
	require.NoError(t, err)

	_, err = ReadRowsFrom(bytes.NewReader(export.Data), ReadOptions{SkipRows: -1})
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = ReadRows(filepath.Join(t.TempDir(), "order.xlsx"), ReadOptions{SkipRows: -3})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

// pad extends a row read back from a workbook, whose trailing empty cells
// may be omitted, to n cells.
func pad(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}
