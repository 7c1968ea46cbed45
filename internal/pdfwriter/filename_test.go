package pdfwriter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	date := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		org     string
		project string
		vendor  string
		want    string
	}{
		{"full", "Comet Robotics", "SumoBots", "Acme", "Comet Robotics SumoBots order at Acme 03-07-2026.pdf"},
		{"no org", "", "General", "Acme", "General order at Acme 03-07-2026.pdf"},
		{"no project", "Comet Robotics", "", "Acme", "Comet Robotics order at Acme 03-07-2026.pdf"},
		{"illegal characters stripped", "A/B: Club", "Pro*ject?", `Mc"Master"-Carr <US>`, "AB Club Project order at McMaster-Carr US 03-07-2026.pdf"},
		{"whitespace collapsed", "  Comet   Robotics ", "", "Digi\tKey", "Comet Robotics order at DigiKey 03-07-2026.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.org, tt.project, tt.vendor, date))
		})
	}
}
