package services

import (
	"context"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
)

// SyncSvc pulls source tables for a date range and persists what is missing.
type SyncSvc interface {
	Synchronize(ctx context.Context, startDate, endDate time.Time) (*domain.SyncResult, error)
}

// SyncEventPublisher announces finished synchronization runs.
type SyncEventPublisher interface {
	PublishSyncCompleted(ctx context.Context, result domain.SyncResult) error
}
