package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"empty line", "", nil},
		{"single field", "Widget", []string{"Widget"}},
		{"tab separated", "a\tb\tc", []string{"a", "b", "c"}},
		{"values trimmed", "  a \t b  ", []string{"a", "b"}},
		{"leading tab", "\tb", []string{"", "b"}},
		{"consecutive tabs", "a\t\tc", []string{"a", "", "c"}},
		{"trailing tab", "a\t", []string{"a", ""}},
		{"quoted field", "\"a b\"\tc", []string{"a b", "c"}},
		{"quoted tab and escaped quote", "\"a\"\"b\tc\"", []string{"a\"b\tc"}},
		{"quoted field between others", "x\t\"y\tz\"\tw", []string{"x", "y\tz", "w"}},
		{"empty quoted field", "\"\"\tb", []string{"", "b"}},
		{"quote inside unquoted is literal", "12\" ruler\tAcme", []string{"12\" ruler", "Acme"}},
		{"text after closing quote is kept", "\"a\"b\tc", []string{"ab", "c"}},
		{"unterminated quote runs to end", "\"a\tb", []string{"a\tb"}},
		{"whitespace only", "   ", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.line))
		})
	}
}
