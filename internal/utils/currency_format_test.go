package utils_test

import (
	"testing"

	"github.com/SscSPs/currency_rates_api/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsCurrencyCode(t *testing.T) {
	cases := map[string]bool{
		"USD":  true,
		"usd":  true,
		"eUr":  true,
		"US":   false,
		"USDT": false,
		"U5D":  false,
		"":     false,
		"ŁÓD":  false,
	}
	for code, want := range cases {
		assert.Equal(t, want, utils.IsCurrencyCode(code), code)
	}
}

func TestNormalizeCurrencyCode(t *testing.T) {
	assert.Equal(t, "USD", utils.NormalizeCurrencyCode(" usd "))
}

func TestMidFits(t *testing.T) {
	assert.True(t, utils.MidFits(decimal.RequireFromString("4.1235")))
	assert.True(t, utils.MidFits(decimal.RequireFromString("999999.9999")))
	assert.True(t, utils.MidFits(decimal.RequireFromString("999999.99994")))
	assert.False(t, utils.MidFits(decimal.RequireFromString("999999.99995")))
	assert.False(t, utils.MidFits(decimal.RequireFromString("1000000")))
	assert.False(t, utils.MidFits(decimal.RequireFromString("12345678.123456")))
}

func TestRoundAndFormatMid(t *testing.T) {
	assert.Equal(t, "4.1235", utils.RoundMid(decimal.RequireFromString("4.123456")).String())
	assert.Equal(t, "4.0000", utils.FormatMid(decimal.NewFromInt(4)))
}
