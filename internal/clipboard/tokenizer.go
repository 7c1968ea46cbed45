// =============================================================================
// Order Form Builder - Clipboard Tokenizer
// =============================================================================
//
// This module splits one line of pasted spreadsheet text into raw field
// strings. Spreadsheet applications put a tab between cells and wrap a cell in
// double quotes when it contains a tab, a newline or a quote; a literal quote
// inside a quoted cell is doubled.
//
// STATE MACHINE:
//
//   startField  --'"'-->  inQuoted
//   startField  --tab-->  startField   (emits "")
//   startField  --char->  inUnquoted
//   inUnquoted  --tab-->  startField   (emits buffer)
//   inQuoted    --'""'->  escapeQuote  -> inQuoted (buffers one '"')
//   inQuoted    --'"'-->  inUnquoted   (closes quoting, field emitted at the
//                                       next tab or end of line)
//
// A '"' met inside an unquoted cell is ordinary text.
//
// =============================================================================

package clipboard

import "strings"

// tokenizerState is the state of the line tokenizer.
type tokenizerState int

const (
	startField tokenizerState = iota
	inUnquoted
	inQuoted
	escapeQuote
)

// Tokenize splits a single line into trimmed field values.
//
// PARAMETERS:
//   - line: One line of pasted text without its line terminator.
//
// RETURNS:
//   - The ordered field values. An empty line yields no fields; a line ending
//     in a tab yields a trailing empty field.
func Tokenize(line string) []string {
	if line == "" {
		return nil
	}

	var (
		fields []string
		buf    strings.Builder
		state  = startField
	)

	emit := func() {
		fields = append(fields, strings.TrimSpace(buf.String()))
		buf.Reset()
	}

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch state {
		case startField:
			switch r {
			case '"':
				state = inQuoted
			case '\t':
				emit()
			default:
				buf.WriteRune(r)
				state = inUnquoted
			}

		case inUnquoted:
			if r == '\t' {
				emit()
				state = startField
				continue
			}
			buf.WriteRune(r)

		case inQuoted:
			if r != '"' {
				buf.WriteRune(r)
				continue
			}
			if i+1 < len(runes) && runes[i+1] == '"' {
				state = escapeQuote
				continue
			}
			state = inUnquoted

		case escapeQuote:
			// r is the second quote of the doubled pair.
			buf.WriteRune('"')
			state = inQuoted
		}
	}

	// Whatever is buffered (possibly nothing, after a trailing tab or an
	// empty quoted cell) is the last field.
	emit()

	return fields
}
