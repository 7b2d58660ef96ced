package common

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"usd", "50010.27", "USD", "$50,010.27"},
		{"rounds half up", "10.2739726", "usd", "$10.27"},
		{"rounds up", "0.005", "USD", "$0.01"},
		{"unknown code", "1.5", "nope", "1.50 NOPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestFormatSignedMoney(t *testing.T) {
	assert.Equal(t, "+$10.27", FormatSignedMoney(decimal.RequireFromString("10.27"), "USD"))
	assert.Equal(t, "$0.00", FormatSignedMoney(decimal.Zero, "USD"))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.02%", FormatPercent(decimal.RequireFromString("0.0205")))
}

func TestShortId(t *testing.T) {
	assert.Equal(t, "none", ShortId(""))
	assert.Equal(t, "abc", ShortId("abc"))
	assert.Equal(t, "12345678...", ShortId("1234567890"))
}
