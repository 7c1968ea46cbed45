// =============================================================================
// Order Form Builder - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks pasted order data
// and reports every diagnostic without generating documents.
//
// COMMAND USAGE:
//   orderform validate [file|-] [--report diagnostics.csv]
//
// EXIT STATUS:
//   0 when the data can be processed (warnings allowed), 1 otherwise.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-form-builder/internal/converter"
	"github.com/ginjaninja78/order-form-builder/internal/validation"
	"github.com/ginjaninja78/order-form-builder/pkg/utils"
)

var (
	validateInput inputOptions
	reportPath    string
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Check order data without generating documents",
	Long: `The validate command parses and validates order rows and prints every
structural problem, field error and warning. With --report the field
diagnostics are also written as CSV.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateInput.register(validateCmd)
	validateCmd.Flags().StringVar(&reportPath, "report", "", "Write field diagnostics to this CSV file")
}

func runValidate(args []string) error {
	_, logger, err := loadConfig()
	if err != nil {
		return err
	}

	parse, source, err := readInput(validateInput, args, os.Stdin)
	if err != nil {
		return err
	}
	logger.Debug("validating order data", "source", source, "rows", len(parse.Rows))

	prepared := converter.Prepare(parse, validation.NewValidator())
	printDiagnostics(os.Stdout, prepared)

	if prepared.Validation != nil {
		fmt.Printf("\n%s\n", validation.Summary(prepared.Validation))
	}

	if reportPath != "" {
		if err := utils.WriteDiagnosticsReport(diagnosticRecords(prepared.Validation), reportPath); err != nil {
			return err
		}
		fmt.Printf("Diagnostics written to %s\n", reportPath)
	}

	if !prepared.Ready() {
		return converter.ErrNotReady
	}

	groups := converter.GroupByVendor(prepared.Items)
	for _, pair := range converter.SimilarVendors(groups, 2) {
		fmt.Printf("  ! Vendors %q and %q look alike and will get separate PDFs\n", pair.First, pair.Second)
	}
	fmt.Printf("Ready: %d item(s) across %d vendor(s)\n", len(prepared.Items), len(groups))
	return nil
}
