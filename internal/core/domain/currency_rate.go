package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MidPrecision is the number of decimal places kept for a mid rate.
const MidPrecision int32 = 4

// MidDigits is the total number of significant digits a stored mid may carry, NUMERIC(10,4).
const MidDigits int32 = 10

// CurrencyRate is the mid rate of one currency inside an ExchangeTable.
// At most one rate exists per (ExchangeTableID, Currency).
type CurrencyRate struct {
	CurrencyRateID  int64           `json:"currencyRateId"`
	ExchangeTableID int64           `json:"exchangeTableId"`
	Currency        string          `json:"currency"`
	Mid             decimal.Decimal `json:"mid"`
	CreatedAt       time.Time       `json:"createdAt"`

	// ExchangeTable links an unsaved rate to its (possibly unsaved) table until
	// the table identity is known. Lookups fill it with the owning table.
	ExchangeTable *ExchangeTable `json:"-"`
}

// BindTable copies the identity of the linked table onto the rate.
func (r *CurrencyRate) BindTable() {
	if r.ExchangeTable != nil {
		r.ExchangeTableID = r.ExchangeTable.ExchangeTableID
	}
}
