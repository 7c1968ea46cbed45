// =============================================================================
// Order Form Builder - Clipboard Parser Module
// =============================================================================
//
// This module turns pasted spreadsheet text into rows bound to the fixed
// 11-column order schema. There is no header row: a value's column is decided
// purely by its position on the line.
//
// FEATURES:
//   - Blank lines are dropped before numbering, so "Row N" always refers to
//     the Nth non-blank line
//   - Short rows are padded with empty values, long rows are truncated; both
//     produce an advisory warning
//   - Structural problems (no input, nothing left after mapping) are returned
//     as data in ParseResult.Errors, never as a Go error
//   - Already-split records (for example spreadsheet rows) go through the same
//     mapper via ParseRecords
//
// =============================================================================

package clipboard

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/order-form-builder/internal/fields"
)

// =============================================================================
// PARSE RESULT STRUCTURE
// =============================================================================

// Structural error messages.
const (
	MsgNoData     = "No data provided"
	MsgNoDataRows = "No data rows found"
)

// ParseResult represents parsed clipboard data.
type ParseResult struct {
	// Headers is the fixed label list, in column order.
	Headers []string

	// Rows contains one entry per non-empty input line.
	Rows []fields.ParsedRow

	// Errors contains structural problems that block every later stage.
	Errors []string

	// Warnings contains row-level column-count mismatches.
	Warnings []string
}

// HasErrors reports whether the parse produced structural errors.
func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse splits pasted text into rows and maps them onto the fixed schema.
//
// PARAMETERS:
//   - data: The raw pasted text. Rows are separated by "\n" ("\r\n" is
//           accepted), fields by tabs.
//
// RETURNS:
//   - The parse result. The function never fails; problems are reported in
//     the result's Errors and Warnings.
func Parse(data string) *ParseResult {
	result := newParseResult()

	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		result.Errors = append(result.Errors, MsgNoData)
		return result
	}

	lines := splitLines(trimmed)
	for i, line := range lines {
		mapRow(result, i+1, Tokenize(line))
	}

	if len(result.Rows) == 0 {
		result.Errors = append(result.Errors, MsgNoDataRows)
	}

	return result
}

// ParseRecords maps already-split records onto the fixed schema. Each cell is
// trimmed; records whose cells are all blank are dropped like blank lines.
//
// PARAMETERS:
//   - records: Row-major cell values, for example the rows of a worksheet.
//
// RETURNS:
//   - The parse result, with the same warnings Parse would produce.
func ParseRecords(records [][]string) *ParseResult {
	result := newParseResult()

	number := 0
	for _, record := range records {
		if isRecordEmpty(record) {
			continue
		}
		number++

		values := make([]string, len(record))
		for i, cell := range record {
			values[i] = strings.TrimSpace(cell)
		}
		mapRow(result, number, values)
	}

	if number == 0 {
		result.Errors = append(result.Errors, MsgNoData)
		return result
	}
	if len(result.Rows) == 0 {
		result.Errors = append(result.Errors, MsgNoDataRows)
	}

	return result
}

// MapRow binds tokenized values to the fixed schema.
//
// PARAMETERS:
//   - number: The 1-based row number used in warnings.
//   - values: The tokenized field values.
//
// RETURNS:
//   - The mapped row.
//   - A structural warning, or "" when the column count matched.
//   - false when the row has no values and must be skipped.
func MapRow(number int, values []string) (fields.ParsedRow, string, bool) {
	row := fields.ParsedRow{Number: number}

	if len(values) == 0 {
		return row, fmt.Sprintf("Row %d: Empty row skipped", number), false
	}

	copy(row.Values[:], values)

	var warning string
	switch {
	case len(values) > fields.Count:
		warning = fmt.Sprintf("Row %d: Has %d extra column(s) - they will be ignored",
			number, len(values)-fields.Count)
	case len(values) < fields.Count:
		warning = fmt.Sprintf("Row %d: Missing %d column(s) - they will be empty",
			number, fields.Count-len(values))
	}

	return row, warning, true
}

// =============================================================================
// HELPERS
// =============================================================================

func newParseResult() *ParseResult {
	return &ParseResult{
		Headers:  fields.Labels(),
		Rows:     []fields.ParsedRow{},
		Errors:   []string{},
		Warnings: []string{},
	}
}

// mapRow appends the mapped row and its warning (if any) to result.
func mapRow(result *ParseResult, number int, values []string) {
	row, warning, ok := MapRow(number, values)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	if ok {
		result.Rows = append(result.Rows, row)
	}
}

// splitLines splits on "\n", strips a trailing "\r" and drops blank lines.
func splitLines(data string) []string {
	raw := strings.Split(data, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// isRecordEmpty checks if a record contains only empty values.
func isRecordEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
