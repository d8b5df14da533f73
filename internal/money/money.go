// Package money parses and displays ledger amounts.
// Amounts are exact decimals; formatting goes through go-money so the
// currency symbol and fraction digits follow the currency code.
package money

import (
	"fmt"
	"math"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "USD"

// Parse reads a decimal amount from user input.
// Blank input parses as zero, matching an untouched form field.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Format displays the magnitude of amount in the given currency, e.g. "$7.00".
// The sign is dropped; callers phrase direction in words. Amounts round to
// the currency's minor unit, except that a non-zero amount never displays as
// zero: "0.004" shows as "$0.004".
func Format(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	amount = amount.Abs()

	cur := gomoney.GetCurrency(currency)
	if cur == nil {
		return amount.String() + " " + strings.ToUpper(currency)
	}

	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	switch {
	case minor.IsZero() && !amount.IsZero():
		return formatDecimal(amount, cur, -amount.Exponent())
	case minor.GreaterThan(maxMinor):
		// beyond what go-money's int64 minor units can hold
		return formatDecimal(amount, cur, int32(cur.Fraction))
	}
	return gomoney.New(minor.IntPart(), cur.Code).Display()
}

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// formatDecimal renders amount with the currency's template and separators
// at the given number of fraction digits.
func formatDecimal(amount decimal.Decimal, cur *gomoney.Currency, places int32) string {
	if places < int32(cur.Fraction) {
		places = int32(cur.Fraction)
	}
	whole, frac, _ := strings.Cut(amount.StringFixed(places), ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(cur.Thousand)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(cur.Decimal)
		b.WriteString(frac)
	}

	out := strings.Replace(cur.Template, "1", b.String(), 1)
	return strings.Replace(out, "$", cur.Grapheme, 1)
}

// IsKnownCurrency reports whether go-money knows the currency code.
func IsKnownCurrency(code string) bool {
	return gomoney.GetCurrency(code) != nil
}
