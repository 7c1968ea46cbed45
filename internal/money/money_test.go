package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Parsing Tests
// ============================================================================

func TestParseCents(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr error
	}{
		{"plain", "10", 1000, nil},
		{"dollar sign", "$10.00", 1000, nil},
		{"thousands", "$1,234.56", 123456, nil},
		{"inner spaces", " $ 2.50 ", 250, nil},
		{"rounds half up", "0.125", 13, nil},
		{"rounds down", "0.124", 12, nil},
		{"float drift case", "1.005", 101, nil},
		{"negative", "-3.50", -350, nil},
		{"largest amount", "92233720368547758.07", math.MaxInt64, nil},
		{"smallest amount", "-92233720368547758.08", math.MinInt64, nil},
		{"one cent past largest", "92233720368547758.08", 0, ErrOutOfRange},
		{"exponent 1e20", "1e20", 0, ErrOutOfRange},
		{"exponent 1e30", "1e30", 0, ErrOutOfRange},
		{"exponent 1e400", "1e400", 0, ErrOutOfRange},
		{"negative 1e20", "-1e20", 0, ErrOutOfRange},
		{"empty", "", 0, ErrInvalidAmount},
		{"only symbol", "$", 0, ErrInvalidAmount},
		{"letters", "abc", 0, ErrInvalidAmount},
		{"trailing junk", "12abc", 0, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCents(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "1234.50", Clean(" $1,234.50\t"))
	assert.Equal(t, "", Clean(" $ , "))
}

func TestToCents(t *testing.T) {
	cents, err := ToCents(decimal.RequireFromString("32.5"))
	require.NoError(t, err)
	assert.Equal(t, int64(3250), cents)

	cents, err = ToCents(decimal.RequireFromString("99.999"))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), cents)

	_, err = ToCents(decimal.RequireFromString("1e20"))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

// ============================================================================
// Formatting Tests
// ============================================================================

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{250, "$2.50"},
		{3250, "$32.50"},
		{123456, "$1234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCents(tt.cents))
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 9, 10, 99, 100, 101, 999, 1000, 12345, 1000000, 987654321} {
		got, err := ParseCents(FormatCents(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, got, "cents %d", cents)
	}
}

// ============================================================================
// Arithmetic Tests
// ============================================================================

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		quantity int
		shipping int64
		want     int64
		wantErr  error
	}{
		{"simple", 1000, 3, 250, 3250, nil},
		{"no shipping", 15, 10, 0, 150, nil},
		{"exactly max", math.MaxInt64 - 1, 1, 1, math.MaxInt64, nil},
		{"product overflows", math.MaxInt64 / 2, 3, 0, 0, ErrOutOfRange},
		{"shipping overflows", math.MaxInt64, 1, 1, 0, ErrOutOfRange},
		{"large price times large quantity", 1_000_000_000_000, 100_000_000, 0, 0, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LineTotal(tt.price, tt.quantity, tt.shipping)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSum(t *testing.T) {
	total, err := Sum()
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	total, err = Sum(1000, 2250, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), total)

	_, err = Sum(math.MaxInt64, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
