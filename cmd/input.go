package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-form-builder/internal/clipboard"
	"github.com/ginjaninja78/order-form-builder/internal/config"
	"github.com/ginjaninja78/order-form-builder/internal/converter"
	"github.com/ginjaninja78/order-form-builder/internal/pdfwriter"
	"github.com/ginjaninja78/order-form-builder/internal/spreadsheet"
	"github.com/ginjaninja78/order-form-builder/internal/validation"
	"github.com/ginjaninja78/order-form-builder/pkg/utils"
)

// =============================================================================
// INPUT FLAGS
// =============================================================================

// inputOptions selects where order rows come from.
type inputOptions struct {
	xlsxPath string
	sheet    string
	skipRows int
}

func (o *inputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.xlsxPath, "xlsx", "", "Read rows from an XLSX workbook instead of pasted text")
	cmd.Flags().StringVar(&o.sheet, "sheet", "", "Sheet to read with --xlsx (default is the first sheet)")
	cmd.Flags().IntVar(&o.skipRows, "skip-rows", 0, "Leading workbook rows to skip, e.g. 1 for a header row")
}

// readInput parses the submission. args[0] is a text file, or "-" or
// nothing for stdin; --xlsx takes precedence.
//
// RETURNS:
//   - The parse result.
//   - A short description of the source for logs.
//   - An error if the input cannot be read.
func readInput(opts inputOptions, args []string, stdin io.Reader) (*clipboard.ParseResult, string, error) {
	if opts.xlsxPath != "" {
		if opts.skipRows < 0 {
			return nil, "", fmt.Errorf("--skip-rows must not be negative, got %d", opts.skipRows)
		}
		records, err := spreadsheet.ReadRows(opts.xlsxPath, spreadsheet.ReadOptions{Sheet: opts.sheet, SkipRows: opts.skipRows})
		if err != nil {
			return nil, "", fmt.Errorf("failed to read workbook: %w", err)
		}
		return clipboard.ParseRecords(records), opts.xlsxPath, nil
	}

	source := "stdin"
	var data []byte
	var err error
	if len(args) > 0 && args[0] != "-" {
		source = args[0]
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	return clipboard.Parse(string(data)), source, nil
}

// =============================================================================
// ORDER FLAGS
// =============================================================================

// orderOptions holds the per-order details not found in the rows.
type orderOptions struct {
	project            string
	justification      string
	justificationMode  string
	eventName          string
	eventDate          string
	expectedAttendance string
	requestDate        string
}

func (o *orderOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.project, "project", "", "Project preset key (e.g. Sumo, VexU)")
	cmd.Flags().StringVar(&o.justification, "justification", "", "Business justification text")
	cmd.Flags().StringVar(&o.justificationMode, "justification-mode", "", "How --justification combines with the project's: replace or append")
	cmd.Flags().StringVar(&o.eventName, "event-name", "", "Event name, if the order is for an event")
	cmd.Flags().StringVar(&o.eventDate, "event-date", "", "Event date (MM/DD/YYYY, M/D/YYYY or YYYY-MM-DD for submit)")
	cmd.Flags().StringVar(&o.expectedAttendance, "attendance", "", "Expected event attendance")
	cmd.Flags().StringVar(&o.requestDate, "request-date", "", "Request date (YYYY-MM-DD), default today")
}

// buildMetadata combines the profile, the project preset and the flags.
func buildMetadata(cfg *config.MainConfig, opts orderOptions) (pdfwriter.OrderMetadata, error) {
	meta := pdfwriter.OrderMetadata{
		OrgName:            cfg.Profile.Club.OrgName(),
		ContactName:        cfg.Profile.User.FullName(),
		ContactPhone:       cfg.Profile.User.Phone,
		ContactEmail:       cfg.Profile.User.Email,
		Justification:      strings.TrimSpace(opts.justification),
		EventName:          opts.eventName,
		EventDate:          opts.eventDate,
		ExpectedAttendance: opts.expectedAttendance,
	}

	if opts.project != "" {
		project, err := cfg.FindProject(opts.project)
		if err != nil {
			return meta, err
		}
		mode := cfg.JustificationMode
		if opts.justificationMode != "" {
			mode = config.JustificationMode(strings.ToLower(opts.justificationMode))
			if mode != config.JustificationReplace && mode != config.JustificationAppend {
				return meta, fmt.Errorf("unknown justification mode %q", opts.justificationMode)
			}
		}
		meta.ProjectName = project.Name()
		meta.Justification = config.ResolveJustification(project, opts.justification, mode)
	}

	if opts.requestDate != "" {
		date, err := time.ParseInLocation("2006-01-02", opts.requestDate, time.Local)
		if err != nil {
			return meta, fmt.Errorf("invalid --request-date %q: %w", opts.requestDate, err)
		}
		meta.RequestDate = date
	}

	return meta, nil
}

// =============================================================================
// DIAGNOSTIC OUTPUT
// =============================================================================

// printDiagnostics writes parse problems, validation diagnostics and
// transform failures, one per line.
func printDiagnostics(w io.Writer, prepared *converter.Prepared) {
	for _, msg := range prepared.Parse.Errors {
		fmt.Fprintf(w, "  ✗ %s\n", msg)
	}
	for _, msg := range prepared.Parse.Warnings {
		fmt.Fprintf(w, "  ! %s\n", msg)
	}
	if prepared.Validation != nil {
		for _, line := range validation.FormatErrors(prepared.Validation.Errors) {
			fmt.Fprintf(w, "  ✗ %s\n", line)
		}
		for _, line := range validation.FormatErrors(prepared.Validation.Warnings) {
			fmt.Fprintf(w, "  ! %s\n", line)
		}
	}
	for _, err := range prepared.RowErrors {
		fmt.Fprintf(w, "  ✗ %v\n", err)
	}
	for _, msg := range prepared.ItemChecks.Errors {
		fmt.Fprintf(w, "  ✗ %s\n", msg)
	}
}

// errorLogEntries converts blocking problems into error log entries.
func errorLogEntries(source string, prepared *converter.Prepared, result *converter.Result) []utils.ErrorLogEntry {
	now := time.Now()
	var entries []utils.ErrorLogEntry

	for _, msg := range prepared.Parse.Errors {
		entries = append(entries, utils.ErrorLogEntry{Timestamp: now, Source: source, ErrorType: "parse", ErrorMessage: msg})
	}
	if prepared.Validation != nil {
		for _, diag := range prepared.Validation.Errors {
			entries = append(entries, utils.ErrorLogEntry{
				Timestamp:    now,
				Source:       source,
				ErrorType:    "validation",
				ErrorMessage: diag.Message,
				RowNumber:    diag.Row,
				FieldName:    diag.Field,
				FieldValue:   diag.Value,
			})
		}
	}
	for _, err := range prepared.RowErrors {
		entry := utils.ErrorLogEntry{Timestamp: now, Source: source, ErrorType: "transform", ErrorMessage: err.Error()}
		var te *converter.TransformError
		if errors.As(err, &te) {
			entry.RowNumber = te.Row
			entry.ErrorMessage = te.Reason
		}
		entries = append(entries, entry)
	}

	for _, msg := range prepared.ItemChecks.Errors {
		entries = append(entries, utils.ErrorLogEntry{Timestamp: now, Source: source, ErrorType: "transform", ErrorMessage: msg})
	}

	if result != nil {
		if result.Fatal != nil {
			entries = append(entries, utils.ErrorLogEntry{Timestamp: now, Source: source, ErrorType: "configuration", ErrorMessage: result.Fatal.Error()})
		}
		for _, ve := range result.VendorErrors {
			entries = append(entries, utils.ErrorLogEntry{Timestamp: now, Source: source, ErrorType: "document", ErrorMessage: ve.Err.Error(), Vendor: ve.Vendor})
		}
	}

	return entries
}

// diagnosticRecords flattens validation diagnostics for the CSV report.
func diagnosticRecords(result *validation.ValidationResult) []utils.DiagnosticRecord {
	if result == nil {
		return nil
	}
	records := make([]utils.DiagnosticRecord, 0, len(result.Errors)+len(result.Warnings))
	for _, diag := range result.All() {
		records = append(records, utils.DiagnosticRecord{
			ID:       diag.ID,
			Severity: string(diag.Severity),
			Row:      diag.Row,
			Field:    diag.Field,
			Value:    diag.Value,
			Rule:     diag.Rule,
			Message:  diag.Message,
		})
	}
	return records
}
