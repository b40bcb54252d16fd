package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_rates_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_rates_api/internal/core/ports/services"
	"github.com/SscSPs/currency_rates_api/internal/core/ports/sources"
	"github.com/SscSPs/currency_rates_api/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) Tables() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockRateSource) FetchTables(ctx context.Context, table string, start, end time.Time) ([]dto.RateTableDTO, error) {
	args := m.Called(ctx, table, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RateTableDTO), args.Error(1)
}

var _ sources.RateSource = (*MockRateSource)(nil)

// --- Mock ExchangeTableRepository ---
type MockExchangeTableRepository struct {
	mock.Mock
}

func (m *MockExchangeTableRepository) FindExchangeTablesInRange(ctx context.Context, referenceCurrency string, from, to time.Time) ([]domain.ExchangeTable, error) {
	args := m.Called(ctx, referenceCurrency, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeTable), args.Error(1)
}

func (m *MockExchangeTableRepository) FindExchangeTableByDate(ctx context.Context, exchangeDate time.Time, referenceCurrency string) (*domain.ExchangeTable, error) {
	args := m.Called(ctx, exchangeDate, referenceCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeTable), args.Error(1)
}

func (m *MockExchangeTableRepository) FindLatestExchangeTable(ctx context.Context, referenceCurrency string) (*domain.ExchangeTable, error) {
	args := m.Called(ctx, referenceCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeTable), args.Error(1)
}

func (m *MockExchangeTableRepository) SaveExchangeTable(ctx context.Context, table *domain.ExchangeTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

var _ portsrepo.ExchangeTableRepositoryFacade = (*MockExchangeTableRepository)(nil)

// --- Mock CurrencyRateRepository ---
type MockCurrencyRateRepository struct {
	mock.Mock
}

func (m *MockCurrencyRateRepository) FindCurrencyRate(ctx context.Context, exchangeTableID int64, currency string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, exchangeTableID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateRepository) SaveCurrencyRate(ctx context.Context, rate *domain.CurrencyRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

var _ portsrepo.CurrencyRateRepositoryFacade = (*MockCurrencyRateRepository)(nil)

// --- Mock SyncEventPublisher ---
type MockSyncEventPublisher struct {
	mock.Mock
}

func (m *MockSyncEventPublisher) PublishSyncCompleted(ctx context.Context, result domain.SyncResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

var _ portssvc.SyncEventPublisher = (*MockSyncEventPublisher)(nil)
