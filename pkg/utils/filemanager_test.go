package utils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	fm := NewFileManager(filepath.Join(root, "out", "pdf"), filepath.Join(root, "logs"))

	require.NoError(t, fm.EnsureDirectories())
	assert.DirExists(t, fm.OutputDir)
	assert.DirExists(t, fm.ErrorLogDir)
}

func TestWrite_NeverOverwrites(t *testing.T) {
	fm := NewFileManager(t.TempDir(), "")
	ctx := context.Background()

	first, err := fm.Write(ctx, "Acme order.pdf", []byte("one"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.OutputDir, "Acme order.pdf"), first)

	second, err := fm.Write(ctx, "Acme order.pdf", []byte("two"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(filepath.Base(second), "Acme order ("))
	assert.True(t, strings.HasSuffix(second, ").pdf"))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	data, err = os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestWrite_DropsDirectories(t *testing.T) {
	fm := NewFileManager(t.TempDir(), "")

	path, err := fm.Write(context.Background(), "../escape.pdf", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.OutputDir, "escape.pdf"), path)
}

func TestWrite_CanceledContext(t *testing.T) {
	fm := NewFileManager(t.TempDir(), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fm.Write(ctx, "a.pdf", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(fm.OutputDir, "a.pdf"))
}

func TestUniqueFileName(t *testing.T) {
	name := UniqueFileName("dir/Acme order.pdf")
	assert.Regexp(t, `^Acme order \([0-9a-f]{8}\)\.pdf$`, name)
}

func TestWriteErrorLog(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteErrorLog(nil, dir)
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = WriteErrorLog([]ErrorLogEntry{
		{Timestamp: time.Now(), Source: "order.txt", ErrorType: "validation", ErrorMessage: `Required field "Vendor" is empty`, RowNumber: 2, FieldName: "Vendor"},
		{Timestamp: time.Now(), Source: "order.txt", ErrorType: "document", ErrorMessage: "failed to render order list", Vendor: "Acme"},
	}, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Total Errors: 2")
	assert.Contains(t, text, "Row Number:     2")
	assert.Contains(t, text, "Vendor:         Acme")
	assert.Contains(t, text, "End of Error Log")
}

func TestWriteSummaryLog(t *testing.T) {
	start := time.Date(2026, time.January, 2, 10, 0, 0, 0, time.UTC)
	path, err := WriteSummaryLog(ProcessingSummary{
		StartTime:     start,
		EndTime:       start.Add(2 * time.Second),
		Source:        "order.txt",
		TotalRows:     3,
		ValidRows:     3,
		LineItems:     3,
		Vendors:       2,
		Documents:     []GeneratedFileInfo{{Vendor: "Acme", OutputFile: "out/Acme.pdf", Items: 2}},
		FailedVendors: []FailedVendorInfo{{Vendor: "Digikey", ErrorMessage: "boom"}},
	}, t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Duration:       2s")
	assert.Contains(t, text, "Documents:          1")
	assert.Contains(t, text, "Output: out/Acme.pdf")
	assert.Contains(t, text, "Error:  boom")
}

func TestWriteDiagnosticsReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	records := []DiagnosticRecord{
		{ID: "1", Severity: "error", Row: 2, Field: "Vendor", Rule: "required", Message: `Required field "Vendor" is empty`},
		{ID: "2", Severity: "warning", Row: 3, Field: "Tax", Value: "0.50", Rule: "sales_tax", Message: "has a non-zero value, please check"},
	}

	require.NoError(t, WriteDiagnosticsReport(records, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "id,severity,row,field,value,rule,message\n"))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var back []DiagnosticRecord
	require.NoError(t, gocsv.UnmarshalFile(file, &back))
	assert.Equal(t, records, back)
}
