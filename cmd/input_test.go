package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-form-builder/internal/clipboard"
	"github.com/ginjaninja78/order-form-builder/internal/config"
	"github.com/ginjaninja78/order-form-builder/internal/converter"
	"github.com/ginjaninja78/order-form-builder/internal/fields"
	"github.com/ginjaninja78/order-form-builder/internal/validation"
)

const widgetLine = "Widget\tAcme\tP-100\thttps://example.com/widget\t$10.00\t3\t\t$2.50\t\tGround\tFragile"

func testConfig() *config.MainConfig {
	cfg := config.Default()
	cfg.Profile.User = config.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.edu", Phone: "555-0100"}
	return cfg
}

func TestReadInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.txt")
	require.NoError(t, os.WriteFile(path, []byte(widgetLine+"\n"), 0o644))

	parse, source, err := readInput(inputOptions{}, []string{path}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, path, source)
	require.Len(t, parse.Rows, 1)
	assert.Equal(t, "Widget", parse.Rows[0].Values[0])
}

func TestReadInput_Stdin(t *testing.T) {
	for _, args := range [][]string{nil, {"-"}} {
		parse, source, err := readInput(inputOptions{}, args, strings.NewReader(widgetLine))
		require.NoError(t, err)
		assert.Equal(t, "stdin", source)
		assert.Len(t, parse.Rows, 1)
	}
}

func TestReadInput_MissingFile(t *testing.T) {
	_, _, err := readInput(inputOptions{}, []string{filepath.Join(t.TempDir(), "nope.txt")}, nil)
	assert.Error(t, err)
}

func TestReadInput_Workbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Name", "Vendor"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Widget", "Acme", "P-100", "https://example.com/widget", "$10.00", "3"}))
	path := filepath.Join(t.TempDir(), "order.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	parse, source, err := readInput(inputOptions{xlsxPath: path, skipRows: 1}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, path, source)
	require.Len(t, parse.Rows, 1)
	assert.Equal(t, "Acme", parse.Rows[0].Get(fields.Vendor))

	_, _, err = readInput(inputOptions{xlsxPath: path, skipRows: -1}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--skip-rows must not be negative")
}

func TestBuildMetadata_Profile(t *testing.T) {
	meta, err := buildMetadata(testConfig(), orderOptions{eventName: "Kickoff", eventDate: "09/01/2026"})
	require.NoError(t, err)

	assert.Equal(t, "Comet Robotics", meta.OrgName)
	assert.Equal(t, "Ada Lovelace", meta.ContactName)
	assert.Equal(t, "ada@example.edu", meta.ContactEmail)
	assert.Equal(t, "Kickoff", meta.EventName)
	assert.Empty(t, meta.ProjectName)
	assert.Empty(t, meta.Justification)
	assert.True(t, meta.RequestDate.IsZero())
}

func TestBuildMetadata_Project(t *testing.T) {
	meta, err := buildMetadata(testConfig(), orderOptions{project: "sumo", justification: "Extra wheels.", justificationMode: "append", requestDate: "2026-02-03"})
	require.NoError(t, err)

	assert.Equal(t, "SumoBots", meta.ProjectName)
	assert.Equal(t, "These parts are needed for the SumoBots team to continue research and development on their project.\n\nExtra wheels.", meta.Justification)
	assert.Equal(t, 2026, meta.RequestDate.Year())
	assert.Equal(t, time.February, meta.RequestDate.Month())
	assert.Equal(t, 3, meta.RequestDate.Day())
}

func TestBuildMetadata_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts orderOptions
	}{
		{"unknown project", orderOptions{project: "Quidditch"}},
		{"bad mode", orderOptions{project: "Sumo", justificationMode: "merge"}},
		{"bad date", orderOptions{requestDate: "02/03/2026"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildMetadata(testConfig(), tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestErrorLogEntries(t *testing.T) {
	parse := clipboard.Parse("Widget\t\tP-100\thttps://example.com/widget\t$10.00\t3")
	prepared := converter.Prepare(parse, validation.NewValidator())
	result := &converter.Result{VendorErrors: []*converter.VendorError{{Vendor: "Acme", Err: assert.AnError}}}

	entries := errorLogEntries("order.txt", prepared, result)

	require.Len(t, entries, 2)
	assert.Equal(t, "validation", entries[0].ErrorType)
	assert.Equal(t, 1, entries[0].RowNumber)
	assert.Equal(t, "Vendor", entries[0].FieldName)
	assert.Equal(t, "document", entries[1].ErrorType)
	assert.Equal(t, "Acme", entries[1].Vendor)
}

func TestDiagnosticRecords(t *testing.T) {
	parse := clipboard.Parse("Widget\tAcme\t\thttps://example.com/widget\t$10.00\t1.5\t0.50")
	prepared := converter.Prepare(parse, validation.NewValidator())

	records := diagnosticRecords(prepared.Validation)

	require.Len(t, records, 2)
	assert.Equal(t, "warning", records[0].Severity)
	assert.Equal(t, validation.RuleWholeNumber, records[0].Rule)
	assert.Equal(t, validation.RuleSalesTax, records[1].Rule)
	assert.Nil(t, diagnosticRecords(nil))
}
