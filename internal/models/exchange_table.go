package models

import "time"

// ExchangeTable is the storage row of exchange_tables.
type ExchangeTable struct {
	ExchangeTableID   int64     `db:"exchange_table_id"`
	ExchangeDate      time.Time `db:"exchange_date"`
	ReferenceCurrency string    `db:"reference_currency"`
	CreatedAt         time.Time `db:"created_at"`
}
