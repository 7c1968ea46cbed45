package pdfwriter

import (
	"strings"
	"time"
	"unicode"
)

// FileName builds the deterministic output name of a vendor's document:
//
//	"<Org ><Project> order at <Vendor> <MM-DD-YYYY>.pdf"
//
// Empty organization or project segments are left out. Characters that are
// illegal in file names on common filesystems are stripped from every segment.
func FileName(orgName, projectName, vendor string, requestDate time.Time) string {
	var prefix []string
	if org := SanitizeSegment(orgName); org != "" {
		prefix = append(prefix, org)
	}
	if project := SanitizeSegment(projectName); project != "" {
		prefix = append(prefix, project)
	}

	var b strings.Builder
	if len(prefix) > 0 {
		b.WriteString(strings.Join(prefix, " "))
		b.WriteString(" ")
	}
	b.WriteString("order at ")
	b.WriteString(SanitizeSegment(vendor))
	b.WriteString(" ")
	b.WriteString(requestDate.Format("01-02-2006"))
	b.WriteString(".pdf")
	return b.String()
}

// SanitizeSegment removes characters not allowed in file names
// (<>:"/\|?* and control characters) and collapses runs of whitespace.
func SanitizeSegment(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`<>:"/\|?*`, r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(cleaned), " ")
}
