package repositories

import (
	"context"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
)

// CurrencyRateReader defines read operations for currency rate data
type CurrencyRateReader interface {
	// FindCurrencyRate returns apperrors.ErrNotFound when the table has no rate for the currency.
	FindCurrencyRate(ctx context.Context, exchangeTableID int64, currency string) (*domain.CurrencyRate, error)
}

// CurrencyRateWriter defines write operations for currency rate data
type CurrencyRateWriter interface {
	// SaveCurrencyRate inserts the rate and assigns its identity.
	SaveCurrencyRate(ctx context.Context, rate *domain.CurrencyRate) error
}

// CurrencyRateRepositoryFacade combines all currency rate repository interfaces
type CurrencyRateRepositoryFacade interface {
	CurrencyRateReader
	CurrencyRateWriter
}
