// =============================================================================
// Order Form Builder - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (orderform)
//   ├── processCmd  (orderform process)
//   ├── validateCmd (orderform validate)
//   ├── submitCmd   (orderform submit)
//   └── versionCmd  (orderform version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Building the structured logger shared by every command
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/order-form-builder/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "orderform",
	Short: "Order Form Builder - Turn pasted order sheets into purchase-order PDFs",
	Long: `Order Form Builder takes rows copied from an order spreadsheet (tab separated,
no header row), validates them, and produces one purchase-order PDF per vendor:
the filled purchase request form followed by an itemized order list.

Key Features:
  - Fixed 11-column order schema with row-level diagnostics
  - One merged PDF per vendor, generated concurrently
  - Project presets and business justification templates
  - Optional hand-off to the online order form, with overflow items
    exported to a spreadsheet

Example Usage:
  orderform validate order.txt              # Check pasted data
  orderform process order.txt --project Sumo
  pbpaste | orderform process -             # Read the clipboard from stdin
  orderform submit order.txt --event-name "Spring build" --event-date 04/18/2026`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig loads the main configuration and builds the logger.
func loadConfig() (*config.MainConfig, *slog.Logger, error) {
	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load main config: %w", err)
	}
	return mainConfig, newLogger(mainConfig.LogLevel), nil
}

// newLogger writes text logs to stderr so stdout stays clean for reports.
func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
