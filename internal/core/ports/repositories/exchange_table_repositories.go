package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
)

// ExchangeTableReader defines read operations for exchange table data
type ExchangeTableReader interface {
	// FindExchangeTablesInRange lists tables of a reference currency dated within [from, to].
	FindExchangeTablesInRange(ctx context.Context, referenceCurrency string, from, to time.Time) ([]domain.ExchangeTable, error)

	// FindExchangeTableByDate returns apperrors.ErrNotFound when no table exists for the date.
	FindExchangeTableByDate(ctx context.Context, exchangeDate time.Time, referenceCurrency string) (*domain.ExchangeTable, error)

	// FindLatestExchangeTable returns the table with the greatest date.
	FindLatestExchangeTable(ctx context.Context, referenceCurrency string) (*domain.ExchangeTable, error)
}

// ExchangeTableWriter defines write operations for exchange table data
type ExchangeTableWriter interface {
	// SaveExchangeTable inserts the table and assigns its identity.
	SaveExchangeTable(ctx context.Context, table *domain.ExchangeTable) error
}

// ExchangeTableRepositoryFacade combines all exchange table repository interfaces
type ExchangeTableRepositoryFacade interface {
	ExchangeTableReader
	ExchangeTableWriter
}
