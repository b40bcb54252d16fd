package utils

import (
	"strings"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IsCurrencyCode reports whether code is exactly three ASCII letters, in any case.
func IsCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// NormalizeCurrencyCode trims and uppercases a currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RoundMid rounds a mid rate to the stored precision.
// Example: 4.123456 returns 4.1235
func RoundMid(mid decimal.Decimal) decimal.Decimal {
	return mid.Round(domain.MidPrecision)
}

// MidFits reports whether mid, once rounded, fits the stored NUMERIC(10,4) column.
// Example: 999999.99994 fits, 999999.99995 rounds to 1000000.0000 and does not
func MidFits(mid decimal.Decimal) bool {
	limit := decimal.New(1, domain.MidDigits-domain.MidPrecision)
	return RoundMid(mid).Abs().LessThan(limit)
}

// FormatMid formats a mid rate with the stored precision.
// Example: 4 returns "4.0000"
func FormatMid(mid decimal.Decimal) string {
	return mid.StringFixed(domain.MidPrecision)
}
