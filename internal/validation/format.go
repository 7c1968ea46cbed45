package validation

import (
	"fmt"
	"strings"
)

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors renders diagnostics as "Row N: message" lines. Diagnostics with
// no row (Row <= 0) are rendered as the bare message.
func FormatErrors(diags []*ValidationError) []string {
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		if d.Row <= 0 {
			lines = append(lines, d.Message)
			continue
		}
		lines = append(lines, fmt.Sprintf("Row %d: %s", d.Row, d.Message))
	}
	return lines
}

// Summary returns a one-line description of a validation result, for example
// "2 errors, 1 warning - 3/5 rows valid".
func Summary(result *ValidationResult) string {
	if result.IsValid && len(result.Warnings) == 0 {
		return fmt.Sprintf("All %d rows are valid", result.TotalRowCount)
	}

	var parts []string
	if n := len(result.Errors); n > 0 {
		parts = append(parts, plural(n, "error"))
	}
	if n := len(result.Warnings); n > 0 {
		parts = append(parts, plural(n, "warning"))
	}

	return fmt.Sprintf("%s - %d/%d rows valid",
		strings.Join(parts, ", "), result.ValidRowCount, result.TotalRowCount)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
