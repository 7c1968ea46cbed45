// =============================================================================
// Order Form Builder - Remaining Items Export
// =============================================================================
//
// The online order form accepts a limited number of line items. Whatever is
// left over is exported as a one-sheet workbook the requester attaches to
// the submission instead.
//
// SHEET "Remaining Items":
//
//   | Name | Vendor | Quantity | URL | PricePerUnit | ShippingAndHandling | TotalPrice | Notes |
//
// Money columns hold "$X.XX" strings so the sheet matches the PDF order list.
//
// =============================================================================

package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-form-builder/internal/money"
	"github.com/ginjaninja78/order-form-builder/internal/types"
)

// RemainingItemsSheet is the name of the exported sheet.
const RemainingItemsSheet = "Remaining Items"

// RemainingItemsHeaders are the exported column headers, in order.
var RemainingItemsHeaders = []string{
	"Name", "Vendor", "Quantity", "URL", "PricePerUnit", "ShippingAndHandling", "TotalPrice", "Notes",
}

// MimeType is the content type of the exported workbook.
const MimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export is a generated workbook.
type Export struct {
	Name     string
	MimeType string
	Data     []byte
}

// RemainingItemsFileName returns "<org> remaining items.xlsx", with the
// project inserted after the organization when there is one.
func RemainingItemsFileName(orgName, projectName string) string {
	base := strings.TrimSpace(orgName)
	if p := strings.TrimSpace(projectName); p != "" {
		base += " " + p
	}
	return base + " remaining items.xlsx"
}

// ExportRemainingItems writes items to a new workbook.
//
// PARAMETERS:
//   - items: The overflow line items, in submission order.
//   - orgName, projectName: Used for the file name only.
//
// RETURNS:
//   - The workbook name and bytes.
//   - An error if the workbook cannot be built.
func ExportRemainingItems(items []types.OrderLineItem, orgName, projectName string) (Export, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(RemainingItemsSheet)
	if err != nil {
		return Export{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return Export{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return Export{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	for i, h := range RemainingItemsHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(RemainingItemsSheet, cell, h); err != nil {
			return Export{}, fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(RemainingItemsHeaders), 1)
	if err := f.SetCellStyle(RemainingItemsSheet, "A1", lastHeader, headerStyle); err != nil {
		return Export{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	for i, item := range items {
		row := i + 2
		total, err := item.TotalCents()
		if err != nil {
			return Export{}, fmt.Errorf("%w: item %d: %w", ErrWrite, i+1, err)
		}
		values := []any{
			item.Name,
			item.Vendor,
			item.Quantity,
			item.URL,
			money.FormatCents(item.PricePerUnitCents),
			money.FormatCents(item.ShippingAndHandlingCents),
			money.FormatCents(total),
			item.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(RemainingItemsSheet, cell, v); err != nil {
				return Export{}, fmt.Errorf("%w: %w", ErrWrite, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Export{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return Export{
		Name:     RemainingItemsFileName(orgName, projectName),
		MimeType: MimeType,
		Data:     buf.Bytes(),
	}, nil
}
