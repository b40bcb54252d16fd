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
	"github.com/SscSPs/currency_rates_api/internal/core/ports/sources"
	"github.com/SscSPs/currency_rates_api/internal/dto"
	"github.com/SscSPs/currency_rates_api/internal/platform/metrics"
	"github.com/SscSPs/currency_rates_api/internal/utils"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxSyncRangeDays caps end_date - start_date of one run.
const DefaultMaxSyncRangeDays = 31

// syncService reconciles source rate tables with the store.
// Runs are expected to be serialized by the caller.
type syncService struct {
	BaseService
	source            sources.RateSource
	txManager         portsrepo.TransactionManager
	referenceCurrency string
	maxRangeDays      int
	metrics           *metrics.Metrics
	publisher         portssvc.SyncEventPublisher
	now               func() time.Time
}

var _ portssvc.SyncSvc = (*syncService)(nil)

// SyncServiceOption configures the sync service.
type SyncServiceOption func(*syncService)

// WithSyncReferenceCurrency sets the reference currency of created tables.
func WithSyncReferenceCurrency(code string) SyncServiceOption {
	return func(s *syncService) {
		if code != "" {
			s.referenceCurrency = utils.NormalizeCurrencyCode(code)
		}
	}
}

// WithMaxRangeDays overrides the accepted range length.
func WithMaxRangeDays(days int) SyncServiceOption {
	return func(s *syncService) {
		if days > 0 {
			s.maxRangeDays = days
		}
	}
}

// WithSyncMetrics records run outcomes.
func WithSyncMetrics(m *metrics.Metrics) SyncServiceOption {
	return func(s *syncService) {
		s.metrics = m
	}
}

// WithSyncEventPublisher announces committed runs.
func WithSyncEventPublisher(p portssvc.SyncEventPublisher) SyncServiceOption {
	return func(s *syncService) {
		s.publisher = p
	}
}

// NewSyncService creates a synchronizer reading from source and writing through txManager.
func NewSyncService(source sources.RateSource, txManager portsrepo.TransactionManager, opts ...SyncServiceOption) portssvc.SyncSvc {
	s := &syncService{
		source:            source,
		txManager:         txManager,
		referenceCurrency: DefaultReferenceCurrency,
		maxRangeDays:      DefaultMaxSyncRangeDays,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// syncPlan is the batch of writes derived from one run.
// Rates of new tables point at entries of newTables and get their identity bound after the tables are saved.
type syncPlan struct {
	newTables []*domain.ExchangeTable
	rates     []*domain.CurrencyRate
}

// Synchronize fetches every table stream for [startDate, endDate], fills days without
// published rates from the closest earlier day, and persists what the store lacks
// in a single transaction.
func (s *syncService) Synchronize(ctx context.Context, startDate, endDate time.Time) (*domain.SyncResult, error) {
	start, end := domain.NormalizeDate(startDate), domain.NormalizeDate(endDate)
	if err := s.validateRange(start, end); err != nil {
		return nil, err
	}

	logger := s.GetLogger(ctx).With(
		slog.String("start_date", domain.FormatDate(start)),
		slog.String("end_date", domain.FormatDate(end)),
		slog.String("reference_currency", s.referenceCurrency),
	)
	began := s.now()

	result, err := s.synchronize(ctx, start, end)
	if err != nil {
		s.metrics.RecordSyncRun(metrics.StatusFailure, s.now().Sub(began), 0, 0)
		logger.Error("Synchronization failed", slog.String("error", err.Error()))
		return nil, err
	}

	result.FinishedAt = s.now()
	s.metrics.RecordSyncRun(metrics.StatusSuccess, result.FinishedAt.Sub(began), result.TablesCreated, result.RatesCreated)
	logger.Info("Synchronization completed",
		slog.Int("tables_created", result.TablesCreated),
		slog.Int("rates_created", result.RatesCreated),
	)

	if s.publisher != nil {
		if err := s.publisher.PublishSyncCompleted(ctx, *result); err != nil {
			logger.Warn("Failed to publish sync event", slog.String("error", err.Error()))
		}
	}
	return result, nil
}

func (s *syncService) validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", apperrors.ErrValidation)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start_date must be before or equal to end_date", apperrors.ErrValidation)
	}
	if domain.DaysBetween(start, end) > s.maxRangeDays {
		return fmt.Errorf("%w: date range too large, maximum %d days allowed", apperrors.ErrValidation, s.maxRangeDays)
	}
	return nil
}

func (s *syncService) synchronize(ctx context.Context, start, end time.Time) (*domain.SyncResult, error) {
	fetched, err := s.fetch(ctx, start, end)
	if err != nil {
		return nil, err
	}
	merged := dto.MergeRateTables(fetched)
	if len(merged) == 0 {
		return nil, fmt.Errorf("%w: source returned no rate tables for %s..%s",
			apperrors.ErrNoSeedData, domain.FormatDate(start), domain.FormatDate(end))
	}

	result := &domain.SyncResult{
		StartDate:         start,
		EndDate:           end,
		ReferenceCurrency: s.referenceCurrency,
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		existing, err := repos.ExchangeTables.FindExchangeTablesInRange(ctx, s.referenceCurrency, start, end)
		if err != nil {
			return fmt.Errorf("failed to load existing exchange tables: %w", err)
		}

		plan := s.plan(merged, indexTables(existing), start, end)

		tables, rates, err := s.persist(ctx, repos, plan)
		if err != nil {
			return err
		}
		result.TablesCreated, result.RatesCreated = tables, rates
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// fetch downloads every table stream concurrently; results keep the stream order.
func (s *syncService) fetch(ctx context.Context, start, end time.Time) ([]dto.RateTableDTO, error) {
	streams := s.source.Tables()
	results := make([][]dto.RateTableDTO, len(streams))

	g, gctx := errgroup.WithContext(ctx)
	for i, table := range streams {
		i, table := i, table
		g.Go(func() error {
			tables, err := s.source.FetchTables(gctx, table, start, end)
			if err != nil {
				return fmt.Errorf("table %s: %w", table, err)
			}
			results[i] = tables
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if !errors.Is(err, apperrors.ErrSourceFetch) {
			err = fmt.Errorf("%w: %w", apperrors.ErrSourceFetch, err)
		}
		return nil, err
	}

	var all []dto.RateTableDTO
	for _, tables := range results {
		all = append(all, tables...)
	}
	return all, nil
}

// plan walks every day of the range. A day without source data reuses the rates of the
// closest earlier day with data; days before the earliest downloaded date get nothing.
// A day with an existing table only gets rates.
func (s *syncService) plan(merged []dto.RateTableDTO, existing map[string]*domain.ExchangeTable, start, end time.Time) *syncPlan {
	plan := &syncPlan{}
	byDate := dto.IndexByDate(merged)

	// merged is ordered by date, so ISO strings compare chronologically
	var carried *dto.RateTableDTO
	startKey := domain.FormatDate(start)
	for i := range merged {
		if merged[i].EffectiveDate >= startKey {
			break
		}
		carried = &merged[i]
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := domain.FormatDate(day)
		if src, ok := byDate[key]; ok {
			carried = &src
		}
		if carried == nil {
			continue
		}

		if table, ok := existing[key]; ok {
			for _, r := range carried.Rates {
				rate := r.ToObject(table)
				plan.rates = append(plan.rates, &rate)
			}
			continue
		}

		table, rates := carried.ToObjects(day, s.referenceCurrency)
		plan.newTables = append(plan.newTables, table)
		for i := range rates {
			plan.rates = append(plan.rates, &rates[i])
		}
	}
	return plan
}

// persist saves new tables first so their identities can be bound to the pending rates,
// then inserts every rate the store does not already hold.
func (s *syncService) persist(ctx context.Context, repos portsrepo.TxRepositories, plan *syncPlan) (int, int, error) {
	for _, table := range plan.newTables {
		if err := repos.ExchangeTables.SaveExchangeTable(ctx, table); err != nil {
			return 0, 0, fmt.Errorf("failed to save exchange table %s: %w", domain.FormatDate(table.ExchangeDate), err)
		}
	}

	inserted := 0
	for _, rate := range plan.rates {
		rate.BindTable()
		_, err := repos.CurrencyRates.FindCurrencyRate(ctx, rate.ExchangeTableID, rate.Currency)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return 0, 0, fmt.Errorf("failed to check currency rate %s: %w", rate.Currency, err)
		}
		if err := repos.CurrencyRates.SaveCurrencyRate(ctx, rate); err != nil {
			return 0, 0, fmt.Errorf("failed to save currency rate %s: %w", rate.Currency, err)
		}
		inserted++
	}
	return len(plan.newTables), inserted, nil
}

func indexTables(tables []domain.ExchangeTable) map[string]*domain.ExchangeTable {
	idx := make(map[string]*domain.ExchangeTable, len(tables))
	for i := range tables {
		idx[domain.FormatDate(tables[i].ExchangeDate)] = &tables[i]
	}
	return idx
}
