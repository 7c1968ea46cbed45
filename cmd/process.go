// =============================================================================
// Order Form Builder - Process Command
// =============================================================================
//
// This file defines the 'process' command, which is the main command for
// turning pasted order data into purchase-order PDFs.
//
// COMMAND USAGE:
//   orderform process [file|-] [flags]
//
// FLAGS:
//   --dry-run     : Validate and show the vendor breakdown without writing PDFs
//   --xlsx        : Read rows from a workbook instead of pasted text
//   --project     : Project preset (sets project name and justification)
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Parse the input into rows
//   3. Validate the rows and transform them into line items
//   4. Group line items by vendor
//   5. For each vendor (concurrently):
//      a. Render the order list
//      b. Fill the purchase form
//      c. Merge and write the PDF
//   6. Write the error log and summary
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-form-builder/internal/config"
	"github.com/ginjaninja78/order-form-builder/internal/converter"
	"github.com/ginjaninja78/order-form-builder/internal/money"
	"github.com/ginjaninja78/order-form-builder/internal/pdfwriter"
	"github.com/ginjaninja78/order-form-builder/internal/types"
	"github.com/ginjaninja78/order-form-builder/internal/validation"
	"github.com/ginjaninja78/order-form-builder/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun stops after validation and prints what would be generated.
var dryRun bool

var (
	processInput inputOptions
	processOrder orderOptions
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process [file|-]",
	Short: "Generate one purchase-order PDF per vendor",
	Long: `The process command reads pasted order rows (tab separated, no header row),
validates them, and writes one purchase-order PDF per vendor to the output
directory.

Each vendor's document is generated independently: a failure for one vendor
is logged and the others are still written. A purchase form template that is
missing a required field stops the whole run.

On completion:
  - PDFs are placed in the output directory
  - Problems are written to an error log in the error log directory
  - A processing summary is written next to the error log`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Validate and show the vendor breakdown without writing PDFs",
	)
	processInput.register(processCmd)
	processOrder.register(processCmd)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the generation pipeline.
func runProcess(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	mainConfig, logger, err := loadConfig()
	if err != nil {
		return err
	}

	files := utils.NewFileManager(mainConfig.OutputDir, mainConfig.ErrorLogDir)
	if err := files.EnsureDirectories(); err != nil {
		return err
	}

	meta, err := buildMetadata(mainConfig, processOrder)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2-3: PARSE, VALIDATE AND TRANSFORM
	// =========================================================================

	parse, source, err := readInput(processInput, args, os.Stdin)
	if err != nil {
		return err
	}

	prepared := converter.Prepare(parse, validation.NewValidator())
	printDiagnostics(os.Stdout, prepared)

	if !prepared.Ready() {
		logPath, logErr := utils.WriteErrorLog(errorLogEntries(source, prepared, nil), mainConfig.ErrorLogDir)
		if logErr != nil {
			logger.Error("failed to write error log", "error", logErr)
		} else if logPath != "" {
			fmt.Printf("\nErrors have been logged to %s\n", logPath)
		}
		return converter.ErrNotReady
	}

	groups := converter.GroupByVendor(prepared.Items)
	for _, pair := range converter.SimilarVendors(groups, 2) {
		fmt.Printf("  ! Vendors %q and %q look alike and will get separate PDFs\n", pair.First, pair.Second)
	}

	preview := converter.Preview(prepared.Items)
	fmt.Printf("\n%d item(s) across %d vendor(s)\n", preview.TotalItems, preview.VendorCount)

	if dryRun {
		for _, g := range groups {
			fmt.Printf("  %s: %d item(s), %s\n", g.Vendor, len(g.Items), formatTotal(g.Items))
		}
		return nil
	}

	// =========================================================================
	// STEP 4-5: GENERATE DOCUMENTS
	// =========================================================================

	result := generate(ctx, mainConfig, logger, files, meta, prepared.Items, preview.VendorCount)

	for i, doc := range result.Documents {
		fmt.Printf("  ✓ %s (%d item(s)) -> %s\n", doc.Vendor, doc.ItemCount, result.OutputPaths[i])
	}
	for _, ve := range result.VendorErrors {
		fmt.Printf("  ✗ %s: %v\n", ve.Vendor, ve.Err)
	}

	// =========================================================================
	// STEP 6: LOGS AND SUMMARY
	// =========================================================================

	writeRunLogs(logger, mainConfig, source, startTime, prepared, result)

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Vendors:         %d\n", result.Stats.VendorCount)
	fmt.Printf("Documents:       %d\n", result.Stats.DocumentsCreated)
	fmt.Printf("Failed vendors:  %d\n", len(result.VendorErrors))
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime).Round(time.Millisecond))

	if result.Fatal != nil {
		return result.Fatal
	}
	if len(result.VendorErrors) > 0 {
		return fmt.Errorf("%d of %d vendor document(s) failed", len(result.VendorErrors), result.Stats.VendorCount)
	}
	return nil
}

// generate wires the pdfcpu assembler, the file sink and a progress bar into
// a Generator and runs it.
func generate(ctx context.Context, cfg *config.MainConfig, logger *slog.Logger, sink converter.Sink, meta pdfwriter.OrderMetadata, items []types.OrderLineItem, vendors int) *converter.Result {
	assembler := pdfwriter.NewAssembler(
		pdfwriter.FileTemplateResolver{Path: cfg.PurchaseFormTemplate},
		pdfwriter.NewPDFCPU(),
		logger,
	)

	bar := progressbar.NewOptions(vendors,
		progressbar.OptionSetDescription("Generating PDFs"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Finish()

	generator := converter.New(assembler,
		converter.WithSink(sink),
		converter.WithLogger(logger),
		converter.WithConcurrency(cfg.MaxConcurrency),
		converter.WithProgress(func(types.GeneratedDocument) { bar.Add(1) }),
	)

	return generator.Generate(ctx, converter.Request{Items: items, Meta: meta})
}

// writeRunLogs writes the error log (when anything failed) and the summary.
func writeRunLogs(logger *slog.Logger, cfg *config.MainConfig, source string, start time.Time, prepared *converter.Prepared, result *converter.Result) {
	if path, err := utils.WriteErrorLog(errorLogEntries(source, prepared, result), cfg.ErrorLogDir); err != nil {
		logger.Error("failed to write error log", "error", err)
	} else if path != "" {
		fmt.Printf("\nErrors have been logged to %s\n", path)
	}

	summary := utils.ProcessingSummary{
		StartTime:        start,
		EndTime:          time.Now(),
		Source:           source,
		TotalRows:        prepared.Validation.TotalRowCount,
		ValidRows:        prepared.Validation.ValidRowCount,
		ValidationErrors: len(prepared.Validation.Errors),
		Warnings:         len(prepared.Parse.Warnings) + len(prepared.Validation.Warnings),
		LineItems:        len(prepared.Items),
		Vendors:          result.Stats.VendorCount,
	}
	for i, doc := range result.Documents {
		summary.Documents = append(summary.Documents, utils.GeneratedFileInfo{Vendor: doc.Vendor, OutputFile: result.OutputPaths[i], Items: doc.ItemCount})
	}
	for _, ve := range result.VendorErrors {
		summary.FailedVendors = append(summary.FailedVendors, utils.FailedVendorInfo{Vendor: ve.Vendor, ErrorMessage: ve.Err.Error()})
	}
	if result.Fatal != nil && !errors.Is(result.Fatal, converter.ErrNoItems) {
		summary.FailedVendors = append(summary.FailedVendors, utils.FailedVendorInfo{Vendor: "(all)", ErrorMessage: result.Fatal.Error()})
	}

	if _, err := utils.WriteSummaryLog(summary, cfg.ErrorLogDir); err != nil {
		logger.Error("failed to write summary", "error", err)
	}
}

// formatTotal renders the grand total of items.
func formatTotal(items []types.OrderLineItem) string {
	total, err := types.TotalCents(items)
	if err != nil {
		return "(out of range)"
	}
	return money.FormatCents(total)
}
