// =============================================================================
// Order Form Builder - Submit Command
// =============================================================================
//
// This file defines the 'submit' command, which hands an order to the
// form-automation sidecar that fills the online purchase request form.
//
// COMMAND USAGE:
//   orderform submit [file|-] --event-name NAME --event-date MM/DD/YYYY [flags]
//
// ITEM LIMIT:
//   The online form takes order_item_limit items. Items are ordered by vendor
//   and everything past the limit is exported to
//   "<org>[ <project>] remaining items.xlsx" in the output directory.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-form-builder/internal/automation"
	"github.com/ginjaninja78/order-form-builder/internal/converter"
	"github.com/ginjaninja78/order-form-builder/internal/validation"
	"github.com/ginjaninja78/order-form-builder/pkg/utils"
)

var (
	submitInput     inputOptions
	submitOrder     orderOptions
	costCenterType  string
	costCenterValue string
	submitDryRun    bool
)

// submitCmd represents the 'submit' command.
var submitCmd = &cobra.Command{
	Use:   "submit [file|-]",
	Short: "Fill the online order form through the automation sidecar",
	Long: `The submit command validates order rows, builds the online order form
payload from the profile and flags, and runs the configured sidecar with
"--json <payload>". Items beyond the form's item limit are exported to a
spreadsheet in the output directory.

Cost center types:
  org      Student Organization Cost Center
  council  Jonsson School Student Council funding
  other    Other (requires --cost-center-value)`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSubmit(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitInput.register(submitCmd)
	submitOrder.register(submitCmd)
	submitCmd.Flags().StringVar(&costCenterType, "cost-center", "org", "Cost center type: org, council or other")
	submitCmd.Flags().StringVar(&costCenterValue, "cost-center-value", "", "Cost center value for --cost-center other")
	submitCmd.Flags().BoolVar(&submitDryRun, "dry-run", false, "Print the form lines without running the sidecar")
}

func runSubmit(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	mainConfig, logger, err := loadConfig()
	if err != nil {
		return err
	}

	meta, err := buildMetadata(mainConfig, submitOrder)
	if err != nil {
		return err
	}
	if meta.Justification == "" {
		meta.Justification = converter.DefaultJustification
	}

	ccType, err := automation.ParseCostCenterType(costCenterType)
	if err != nil {
		return err
	}

	parse, _, err := readInput(submitInput, args, os.Stdin)
	if err != nil {
		return err
	}
	prepared := converter.Prepare(parse, validation.NewValidator())
	printDiagnostics(os.Stdout, prepared)
	if !prepared.Ready() {
		return converter.ErrNotReady
	}

	eventDate, err := automation.NormalizeEventDate(meta.EventDate)
	if err != nil {
		return err
	}

	payload := automation.Payload{
		OrderData: automation.OrderData{
			Items:         prepared.Items,
			Justification: meta.Justification,
			ContactName:   meta.ContactName,
			ContactEmail:  meta.ContactEmail,
			ContactPhone:  meta.ContactPhone,
			Project:       meta.ProjectName,
			OrgName:       meta.OrgName,
		},
		FormInputs: automation.FormInputs{
			NetID: mainConfig.Profile.User.NetID,
			Advisor: automation.Advisor{
				Name:  mainConfig.Profile.Club.Advisor.Name,
				Email: mainConfig.Profile.Club.Advisor.Email,
			},
			EventName:  meta.EventName,
			EventDate:  eventDate,
			CostCenter: automation.CostCenter{Type: ccType, Value: costCenterValue},
		},
	}
	if !meta.RequestDate.IsZero() {
		payload.OrderData.RequestDate = meta.RequestDate.Format(time.DateOnly)
	}

	files := utils.NewFileManager(mainConfig.OutputDir, mainConfig.ErrorLogDir)
	if err := files.EnsureDirectories(); err != nil {
		return err
	}

	submitter := automation.NewSidecarSubmitter(mainConfig.SidecarPath, automation.ExecRunner{}, logger)
	service := automation.NewService(submitter, files, mainConfig.OrderItemLimit, logger)

	if submitDryRun {
		form, remaining, vendors := service.Prepare(payload)
		if err := form.Validate(); err != nil {
			return err
		}
		lines, err := automation.FormLines(form.OrderData.Items)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Printf("  Item %d: %s | %s | %s x %d = %s\n", line.Index, line.Name, line.URL, line.Price, line.Quantity, line.Total)
		}
		fmt.Printf("\n%d vendor(s), %d item(s) on the form, %d item(s) for the remaining-items spreadsheet\n",
			vendors, len(form.OrderData.Items), len(remaining))
		return nil
	}

	outcome, err := service.Submit(ctx, payload)
	if err != nil {
		return err
	}

	fmt.Println("\n=== Submission ===")
	fmt.Printf("Status:           %s\n", outcome.Status)
	if outcome.Message != "" {
		fmt.Printf("Message:          %s\n", outcome.Message)
	}
	if outcome.Details != "" {
		fmt.Printf("Details:          %s\n", outcome.Details)
	}
	fmt.Printf("Vendors:          %d\n", outcome.VendorCount)
	fmt.Printf("Items:            %d\n", outcome.ItemsCount)
	fmt.Printf("Truncated items:  %d\n", outcome.TruncatedItemsCount)
	if outcome.RemainingItemsPath != "" {
		fmt.Printf("Remaining items:  %s (uploaded: %t)\n", outcome.RemainingItemsPath, outcome.RemainingItemsUploaded)
	}

	if !outcome.Success() {
		return fmt.Errorf("%w: %s", automation.ErrSidecar, outcome.Message)
	}
	return nil
}
