// =============================================================================
// Order Form Builder - Spreadsheet Reader
// =============================================================================
//
// This module reads order rows from an XLSX workbook so a saved order sheet
// can be fed through the same row mapper as pasted text.
//
// EXPECTED LAYOUT:
//   The sheet uses the fixed column order of pasted data (Name, Vendor,
//   Part #, Link, Price per Unit, Quantity, Tax, S&H, TOTAL, Delivery Type,
//   Notes). Leading rows such as a header can be skipped.
//
// =============================================================================

package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadOptions selects what part of a workbook to read.
type ReadOptions struct {
	// Sheet is the sheet name. Empty means the first sheet.
	Sheet string

	// SkipRows is the number of leading rows to drop, e.g. 1 for a header.
	// It must not be negative.
	SkipRows int
}

func (o ReadOptions) validate() error {
	if o.SkipRows < 0 {
		return fmt.Errorf("%w: skip rows must not be negative, got %d", ErrInvalidOptions, o.SkipRows)
	}
	return nil
}

// ReadRows reads an XLSX file from disk.
//
// PARAMETERS:
//   - path: The workbook path.
//   - opts: Sheet selection and header skipping.
//
// RETURNS:
//   - The cell strings of every remaining row. Rows that are entirely empty
//     are dropped so they do not count toward row numbers.
//   - An error if the options are invalid, the file cannot be opened or the
//     sheet does not exist.
func ReadRows(path string, opts ReadOptions) ([][]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	return readRows(f, opts)
}

// ReadRowsFrom reads an XLSX workbook from r.
func ReadRowsFrom(r io.Reader, opts ReadOptions) ([][]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	return readRows(f, opts)
}

func readRows(f *excelize.File, opts ReadOptions) ([][]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	sheetName := opts.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSheet, sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	records := make([][]string, 0, len(rows))
	for i := opts.SkipRows; i < len(rows); i++ {
		if isRowEmpty(rows[i]) {
			continue
		}
		records = append(records, rows[i])
	}
	return records, nil
}

// isRowEmpty checks if all cells in a row are empty.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
