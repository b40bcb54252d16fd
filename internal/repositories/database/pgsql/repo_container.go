package pgsql

import (
	portsrepo "github.com/SscSPs/currency_rates_api/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx repositories over dbPool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeTableRepo: newPgxExchangeTableRepository(dbPool),
		CurrencyRateRepo:  newPgxCurrencyRateRepository(dbPool),
		TxManager:         &BaseRepository{Pool: dbPool},
	}
}
