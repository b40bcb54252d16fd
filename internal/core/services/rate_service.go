package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/apperrors"
	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_rates_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_rates_api/internal/core/ports/services"
	"github.com/SscSPs/currency_rates_api/internal/platform/metrics"
	"github.com/SscSPs/currency_rates_api/internal/utils"
)

// DefaultReferenceCurrency is used when no reference currency is configured.
const DefaultReferenceCurrency = "PLN"

// rateService answers point-in-time and latest-known rate lookups. It never writes.
type rateService struct {
	BaseService
	tableRepo         portsrepo.ExchangeTableReader
	rateRepo          portsrepo.CurrencyRateReader
	referenceCurrency string
	metrics           *metrics.Metrics
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// RateServiceOption configures the rate service.
type RateServiceOption func(*rateService)

// WithRateReferenceCurrency sets the reference currency used when a lookup omits one.
func WithRateReferenceCurrency(code string) RateServiceOption {
	return func(s *rateService) {
		if code != "" {
			s.referenceCurrency = utils.NormalizeCurrencyCode(code)
		}
	}
}

// WithRateMetrics records lookup outcomes.
func WithRateMetrics(m *metrics.Metrics) RateServiceOption {
	return func(s *rateService) {
		s.metrics = m
	}
}

// NewRateService creates a rate lookup service.
func NewRateService(tableRepo portsrepo.ExchangeTableReader, rateRepo portsrepo.CurrencyRateReader, opts ...RateServiceOption) portssvc.RateSvcFacade {
	s := &rateService{
		tableRepo:         tableRepo,
		rateRepo:          rateRepo,
		referenceCurrency: DefaultReferenceCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetRateByDate returns the rate of currency in the table dated exchangeDate.
func (s *rateService) GetRateByDate(ctx context.Context, currency, referenceCurrency string, exchangeDate time.Time) (*domain.CurrencyRate, error) {
	currency, referenceCurrency, err := s.normalizePair(currency, referenceCurrency)
	if err != nil {
		return nil, err
	}
	if exchangeDate.IsZero() {
		return nil, fmt.Errorf("%w: exchange date is required", apperrors.ErrValidation)
	}

	table, err := s.tableRepo.FindExchangeTableByDate(ctx, domain.NormalizeDate(exchangeDate), referenceCurrency)
	if err != nil {
		return nil, s.lookupFailed(ctx, metrics.LookupByDate, err, "failed to find exchange table",
			slog.String("reference_currency", referenceCurrency),
			slog.String("exchange_date", domain.FormatDate(exchangeDate)))
	}

	return s.rateInTable(ctx, metrics.LookupByDate, table, currency)
}

// GetLatestRate returns the rate of currency in the most recent table.
func (s *rateService) GetLatestRate(ctx context.Context, currency, referenceCurrency string) (*domain.CurrencyRate, error) {
	currency, referenceCurrency, err := s.normalizePair(currency, referenceCurrency)
	if err != nil {
		return nil, err
	}

	table, err := s.tableRepo.FindLatestExchangeTable(ctx, referenceCurrency)
	if err != nil {
		return nil, s.lookupFailed(ctx, metrics.LookupLatest, err, "failed to find latest exchange table",
			slog.String("reference_currency", referenceCurrency))
	}

	return s.rateInTable(ctx, metrics.LookupLatest, table, currency)
}

func (s *rateService) rateInTable(ctx context.Context, kind string, table *domain.ExchangeTable, currency string) (*domain.CurrencyRate, error) {
	rate, err := s.rateRepo.FindCurrencyRate(ctx, table.ExchangeTableID, currency)
	if err != nil {
		return nil, s.lookupFailed(ctx, kind, err, "failed to find currency rate",
			slog.String("currency", currency),
			slog.Int64("exchange_table_id", table.ExchangeTableID))
	}

	rate.ExchangeTable = table
	s.metrics.RecordLookup(kind, metrics.ResultFound)
	return rate, nil
}

func (s *rateService) lookupFailed(ctx context.Context, kind string, err error, msg string, keyvals ...any) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		s.metrics.RecordLookup(kind, metrics.ResultNotFound)
		s.LogDebug(ctx, msg, keyvals...)
		return err
	}
	s.metrics.RecordLookup(kind, metrics.ResultError)
	s.LogError(ctx, err, msg, keyvals...)
	return fmt.Errorf("%s: %w", msg, err)
}

func (s *rateService) normalizePair(currency, referenceCurrency string) (string, string, error) {
	if referenceCurrency == "" {
		referenceCurrency = s.referenceCurrency
	}
	if !utils.IsCurrencyCode(currency) {
		return "", "", fmt.Errorf("%w: invalid currency code %q, must be 3 letters", apperrors.ErrValidation, currency)
	}
	if !utils.IsCurrencyCode(referenceCurrency) {
		return "", "", fmt.Errorf("%w: invalid reference currency code %q, must be 3 letters", apperrors.ErrValidation, referenceCurrency)
	}
	return utils.NormalizeCurrencyCode(currency), utils.NormalizeCurrencyCode(referenceCurrency), nil
}
