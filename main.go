// =============================================================================
// Order Form Builder - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Order Form Builder CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   orderform process       - Build one purchase-order PDF per vendor
//   orderform validate      - Parse and validate pasted order data only
//   orderform submit        - Hand the order to the form-automation sidecar
//   orderform version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains the ingestion and document-assembly pipeline
//   - pkg/           : Contains shared file utilities (sink, logs, reports)
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/order-form-builder/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
