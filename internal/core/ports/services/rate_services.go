package services

import (
	"context"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
)

// RateReaderSvc defines lookups of stored mid rates. The returned rate carries its ExchangeTable.
type RateReaderSvc interface {
	// GetRateByDate returns the rate of currency in the table dated exchangeDate.
	GetRateByDate(ctx context.Context, currency, referenceCurrency string, exchangeDate time.Time) (*domain.CurrencyRate, error)

	// GetLatestRate returns the rate of currency in the most recent table.
	GetLatestRate(ctx context.Context, currency, referenceCurrency string) (*domain.CurrencyRate, error)
}

// RateSvcFacade combines all rate service interfaces
type RateSvcFacade interface {
	RateReaderSvc
}
