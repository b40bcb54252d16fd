package sources

import (
	"context"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/dto"
)

// RateSource is an external feed of daily rate tables split into independent table streams.
type RateSource interface {
	// Tables lists the stream identifiers fetched on every run, in merge order.
	Tables() []string

	// FetchTables returns the published tables of one stream dated within [start, end].
	FetchTables(ctx context.Context, table string, start, end time.Time) ([]dto.RateTableDTO, error)
}
