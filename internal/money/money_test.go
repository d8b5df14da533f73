package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "50", want: "50"},
		{name: "fraction", input: "12.35", want: "12.35"},
		{name: "surrounding spaces", input: "  7 ", want: "7"},
		{name: "negative", input: "-3.5", want: "-3.5"},
		{name: "blank is zero", input: "   ", want: "0"},
		{name: "garbage", input: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency string
		want     string
	}{
		{name: "dollars", amount: decimal.NewFromInt(7), currency: "USD", want: "$7.00"},
		{name: "sign is dropped", amount: decimal.NewFromInt(-20), currency: "USD", want: "$20.00"},
		{name: "rounds to cents", amount: decimal.RequireFromString("0.125"), currency: "USD", want: "$0.13"},
		{name: "sub-cent amounts stay visible", amount: decimal.RequireFromString("0.004"), currency: "USD", want: "$0.004"},
		{name: "zero", amount: decimal.Zero, currency: "USD", want: "$0.00"},
		{name: "beyond int64 minor units", amount: decimal.RequireFromString("100000000000000000"), currency: "USD", want: "$100,000,000,000,000,000.00"},
		{name: "huge negative", amount: decimal.RequireFromString("-99999999999999999999"), currency: "USD", want: "$99,999,999,999,999,999,999.00"},
		{name: "large but representable", amount: decimal.RequireFromString("1234567.891"), currency: "USD", want: "$1,234,567.89"},
		{name: "default currency", amount: decimal.NewFromInt(1), currency: "", want: "$1.00"},
		{name: "unknown currency", amount: decimal.RequireFromString("2.5"), currency: "xyz", want: "2.5 XYZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.currency))
		})
	}
}

func TestIsKnownCurrency(t *testing.T) {
	assert.True(t, IsKnownCurrency("EUR"))
	assert.False(t, IsKnownCurrency("NOPE"))
}
