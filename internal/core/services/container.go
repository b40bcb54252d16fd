package services

import (
	portsrepo "github.com/SscSPs/currency_rates_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_rates_api/internal/core/ports/services"
	"github.com/SscSPs/currency_rates_api/internal/core/ports/sources"
	"github.com/SscSPs/currency_rates_api/internal/platform/config"
	"github.com/SscSPs/currency_rates_api/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// m and publisher may be nil.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	source sources.RateSource,
	m *metrics.Metrics,
	publisher portssvc.SyncEventPublisher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Rate = NewRateService(
		repos.ExchangeTableRepo,
		repos.CurrencyRateRepo,
		WithRateReferenceCurrency(cfg.ReferenceCurrency),
		WithRateMetrics(m),
	)

	syncOpts := []SyncServiceOption{
		WithSyncReferenceCurrency(cfg.ReferenceCurrency),
		WithMaxRangeDays(cfg.SyncMaxRangeDays),
		WithSyncMetrics(m),
	}
	if publisher != nil {
		syncOpts = append(syncOpts, WithSyncEventPublisher(publisher))
	}
	container.Sync = NewSyncService(source, repos.TxManager, syncOpts...)

	return container
}
