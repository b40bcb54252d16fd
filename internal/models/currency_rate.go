package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRate is the storage row of currency_rates.
type CurrencyRate struct {
	CurrencyRateID  int64           `db:"currency_rate_id"`
	ExchangeTableID int64           `db:"exchange_table_id"`
	Currency        string          `db:"currency"`
	Mid             decimal.Decimal `db:"mid"`
	CreatedAt       time.Time       `db:"created_at"`
}
