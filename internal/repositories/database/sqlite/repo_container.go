package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/currency_rates_api/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the sqlite repositories over db.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeTableRepo: newExchangeTableRepository(db),
		CurrencyRateRepo:  newCurrencyRateRepository(db),
		TxManager:         NewTxManager(db),
	}
}
