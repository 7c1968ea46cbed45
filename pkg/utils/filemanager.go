// =============================================================================
// Order Form Builder - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the CLI, including:
//   - Directory management
//   - Writing generated documents without clobbering earlier ones
//   - Error log generation
//   - Processing summaries
//
// NAMING STRATEGY:
//   - Documents keep the name the generator chose
//   - When that name is already taken, a short random suffix is inserted
//     before the extension: "Acme order.pdf" -> "Acme order (1a2b3c4d).pdf"
//
// =============================================================================

package utils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the CLI.
type FileManager struct {
	// OutputDir is where generated documents are placed.
	OutputDir string

	// ErrorLogDir is where error logs and summaries are placed.
	ErrorLogDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(outputDir, errorLogDir string) *FileManager {
	return &FileManager{
		OutputDir:   outputDir,
		ErrorLogDir: errorLogDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
//
// RETURNS:
//   - An error if any directory cannot be created.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{
		fm.OutputDir,
		fm.ErrorLogDir,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// DOCUMENT OUTPUT
// =============================================================================

// maxNameAttempts bounds the suffix retries of Write.
const maxNameAttempts = 5

// Write stores data as filename inside OutputDir. It never overwrites an
// existing file.
//
// PARAMETERS:
//   - ctx: Checked before writing.
//   - filename: The base file name; directory components are dropped.
//   - data: The file contents.
//
// RETURNS:
//   - The path the data was written to.
//   - An error if the file cannot be created or written.
func (fm *FileManager) Write(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(filename)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		path := filepath.Join(fm.OutputDir, name)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			name = UniqueFileName(filename)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", path, err)
		}

		if _, err := file.Write(data); err != nil {
			file.Close()
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("failed to close %s: %w", path, err)
		}
		return path, nil
	}

	return "", fmt.Errorf("failed to find a free name for %s", filename)
}

// UniqueFileName inserts a short random suffix before the extension.
func UniqueFileName(filename string) string {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s (%s)%s", stem, uuid.New().String()[:8], ext)
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry represents a single error log entry.
type ErrorLogEntry struct {
	Timestamp    time.Time
	Source       string
	ErrorType    string
	ErrorMessage string
	RowNumber    int
	FieldName    string
	FieldValue   string
	Vendor       string
}

// WriteErrorLog writes error entries to a log file.
//
// PARAMETERS:
//   - entries: The error entries to write.
//   - outputDir: The directory to write the log file.
//
// RETURNS:
//   - The path to the error log file, empty when there was nothing to log.
//   - An error if writing fails.
func WriteErrorLog(entries []ErrorLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	// Generate log file name.
	timestamp := time.Now().Format("20060102_150405")
	logPath := filepath.Join(outputDir, fmt.Sprintf("error_log_%s.txt", timestamp))
	if FileExists(logPath) {
		logPath = filepath.Join(outputDir, UniqueFileName(logPath))
	}

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Order Form Builder - Error Log\n"+
		"Generated: %s\n"+
		"Total Errors: %d\n"+
		"================================================================================\n\n",
		time.Now().Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Error #%d\n"+
			"  Timestamp:      %s\n"+
			"  Source:         %s\n"+
			"  Error Type:     %s\n"+
			"  Message:        %s\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Source,
			entry.ErrorType,
			entry.ErrorMessage)

		if entry.RowNumber > 0 {
			fmt.Fprintf(writer, "  Row Number:     %d\n", entry.RowNumber)
		}
		if entry.FieldName != "" {
			fmt.Fprintf(writer, "  Field:          %s\n", entry.FieldName)
		}
		if entry.FieldValue != "" {
			fmt.Fprintf(writer, "  Value:          %s\n", entry.FieldValue)
		}
		if entry.Vendor != "" {
			fmt.Fprintf(writer, "  Vendor:         %s\n", entry.Vendor)
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Error Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a processing run.
type ProcessingSummary struct {
	StartTime        time.Time
	EndTime          time.Time
	Source           string
	TotalRows        int
	ValidRows        int
	ValidationErrors int
	Warnings         int
	LineItems        int
	Vendors          int
	Documents        []GeneratedFileInfo
	FailedVendors    []FailedVendorInfo
}

// GeneratedFileInfo describes a document that was written.
type GeneratedFileInfo struct {
	Vendor     string
	OutputFile string
	Items      int
}

// FailedVendorInfo describes a vendor whose document failed.
type FailedVendorInfo struct {
	Vendor       string
	ErrorMessage string
}

// WriteSummaryLog writes a processing summary to a log file.
//
// PARAMETERS:
//   - summary: The processing summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", timestamp))
	if FileExists(summaryPath) {
		summaryPath = filepath.Join(outputDir, UniqueFileName(summaryPath))
	}

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "Order Form Builder - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Source:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Total Rows:         %d\n"+
		"  Valid Rows:         %d\n"+
		"  Validation Errors:  %d\n"+
		"  Warnings:           %d\n"+
		"  Line Items:         %d\n"+
		"  Vendors:            %d\n"+
		"  Documents:          %d\n"+
		"  Failed Vendors:     %d\n\n",
		summary.Source,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.TotalRows,
		summary.ValidRows,
		summary.ValidationErrors,
		summary.Warnings,
		summary.LineItems,
		summary.Vendors,
		len(summary.Documents),
		len(summary.FailedVendors))

	if len(summary.Documents) > 0 {
		writer.WriteString("Generated Documents:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, doc := range summary.Documents {
			fmt.Fprintf(writer, "  Vendor: %s\n", doc.Vendor)
			fmt.Fprintf(writer, "  Output: %s\n", doc.OutputFile)
			fmt.Fprintf(writer, "  Items:  %d\n\n", doc.Items)
		}
	}

	if len(summary.FailedVendors) > 0 {
		writer.WriteString("Failed Vendors:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, fv := range summary.FailedVendors {
			fmt.Fprintf(writer, "  Vendor: %s\n", fv.Vendor)
			fmt.Fprintf(writer, "  Error:  %s\n\n", fv.ErrorMessage)
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
