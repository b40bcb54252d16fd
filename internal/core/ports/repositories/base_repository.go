package repositories

import "context"

// TxRepositories exposes the repositories bound to one open transaction.
type TxRepositories struct {
	ExchangeTables ExchangeTableRepositoryFacade
	CurrencyRates  CurrencyRateRepositoryFacade
}

// TransactionManager runs work inside a single database transaction.
type TransactionManager interface {
	// WithinTransaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
