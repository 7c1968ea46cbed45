// Package money converts between pasted dollar strings and integer cents.
//
// Parsing goes through shopspring/decimal so "0.1" + "0.2" style drift never
// happens, and display goes through go-money's formatter so every document
// prints amounts the same way.
package money

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD is the only currency pasted order data is expressed in.
const USD = gomoney.USD

var (
	// ErrInvalidAmount is returned when a cleaned string is not a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrOutOfRange is returned when an amount or total does not fit in int64 cents.
	ErrOutOfRange = errors.New("amount out of range")
)

// dollarFormatter prints cents as "$1234.56": no thousands separator, so the
// output can be fed straight back through ParseCents.
var dollarFormatter = gomoney.NewFormatter(2, ".", "", "$", "$1")

// Clean strips currency symbols, thousands separators and all whitespace.
func Clean(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '$' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// ParseDecimal cleans raw and parses it as an exact decimal.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return d, nil
}

// ToCents converts a dollar amount to cents, rounding half away from zero.
// Amounts whose cents do not fit in an int64 fail with ErrOutOfRange.
func ToCents(dollars decimal.Decimal) (int64, error) {
	fraction := 2
	if c := gomoney.GetCurrency(USD); c != nil {
		fraction = c.Fraction
	}
	return fitCents(dollars.Mul(decimal.New(1, int32(fraction))).Round(0))
}

// ParseCents parses a pasted dollar string straight to cents.
func ParseCents(raw string) (int64, error) {
	d, err := ParseDecimal(raw)
	if err != nil {
		return 0, err
	}
	return ToCents(d)
}

// FormatCents renders cents as a dollar string such as "$32.50".
func FormatCents(cents int64) string {
	return dollarFormatter.Format(cents)
}

// LineTotal returns price * quantity + shipping in cents.
//
// RETURNS:
//   - The line total.
//   - ErrOutOfRange if the total does not fit in an int64.
func LineTotal(priceCents int64, quantity int, shippingCents int64) (int64, error) {
	total := decimal.NewFromInt(priceCents).
		Mul(decimal.NewFromInt(int64(quantity))).
		Add(decimal.NewFromInt(shippingCents))
	return fitCents(total)
}

// Sum adds cent amounts. It fails with ErrOutOfRange instead of wrapping.
func Sum(amounts ...int64) (int64, error) {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(decimal.NewFromInt(amount))
	}
	return fitCents(total)
}

// fitCents converts a whole number of cents to int64.
func fitCents(cents decimal.Decimal) (int64, error) {
	if !cents.BigInt().IsInt64() {
		return 0, ErrOutOfRange
	}
	return cents.IntPart(), nil
}
