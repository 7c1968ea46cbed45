package utils

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// DiagnosticRecord is one row of the diagnostics CSV report.
type DiagnosticRecord struct {
	ID       string `csv:"id"`
	Severity string `csv:"severity"`
	Row      int    `csv:"row"`
	Field    string `csv:"field"`
	Value    string `csv:"value"`
	Rule     string `csv:"rule"`
	Message  string `csv:"message"`
}

// WriteDiagnosticsReport writes records as CSV with a header row. An empty
// record list still produces the header.
//
// PARAMETERS:
//   - records: The diagnostics, in report order.
//   - path: The destination file; an existing file is replaced.
func WriteDiagnosticsReport(records []DiagnosticRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer file.Close()

	if records == nil {
		records = []DiagnosticRecord{}
	}
	if err := gocsv.MarshalFile(&records, file); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
