package domain

import "time"

// ExchangeTable is the set of rates published for one date against one reference currency.
// At most one table exists per (ExchangeDate, ReferenceCurrency).
type ExchangeTable struct {
	ExchangeTableID   int64     `json:"exchangeTableId"`
	ExchangeDate      time.Time `json:"exchangeDate"`
	ReferenceCurrency string    `json:"referenceCurrency"`
	CreatedAt         time.Time `json:"createdAt"`
}

// IsPersisted reports whether the store has assigned an identity.
func (t *ExchangeTable) IsPersisted() bool {
	return t != nil && t.ExchangeTableID != 0
}
