package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/currency_rates_api/internal/apperrors"
	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_rates_api/internal/core/ports/repositories"
	"github.com/SscSPs/currency_rates_api/internal/models"
	"github.com/SscSPs/currency_rates_api/internal/utils"
	"github.com/SscSPs/currency_rates_api/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// CurrencyRateRepository implements the currency rate ports on sqlite.
// Mids are stored as fixed-point text.
type CurrencyRateRepository struct {
	db dbtx
}

var _ portsrepo.CurrencyRateRepositoryFacade = (*CurrencyRateRepository)(nil)

func newCurrencyRateRepository(db dbtx) *CurrencyRateRepository {
	return &CurrencyRateRepository{db: db}
}

// FindCurrencyRate returns the rate of currency inside one table.
func (r *CurrencyRateRepository) FindCurrencyRate(ctx context.Context, exchangeTableID int64, currency string) (*domain.CurrencyRate, error) {
	var (
		m              models.CurrencyRate
		mid, createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT currency_rate_id, exchange_table_id, currency, mid, created_at
		FROM currency_rates
		WHERE exchange_table_id = ? AND currency = ?`,
		exchangeTableID, currency,
	).Scan(&m.CurrencyRateID, &m.ExchangeTableID, &m.Currency, &mid, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("rate for %s in exchange table %d not found", currency, exchangeTableID))
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find currency rate", err)
	}

	if m.Mid, err = decimal.NewFromString(mid); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to parse stored mid", err)
	}
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to parse created_at", err)
	}

	rate := mapping.ToDomainCurrencyRate(m)
	return &rate, nil
}

// SaveCurrencyRate inserts the rate and assigns its identity.
func (r *CurrencyRateRepository) SaveCurrencyRate(ctx context.Context, rate *domain.CurrencyRate) error {
	m := mapping.ToModelCurrencyRate(*rate)
	if !utils.MidFits(m.Mid) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to save currency rate",
			fmt.Errorf("mid %s for %s overflows NUMERIC(%d,%d)", m.Mid, m.Currency, domain.MidDigits, domain.MidPrecision))
	}

	var createdAt string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO currency_rates (exchange_table_id, currency, mid)
		VALUES (?, ?, ?)
		RETURNING currency_rate_id, created_at`,
		m.ExchangeTableID, m.Currency, m.Mid.StringFixed(domain.MidPrecision),
	).Scan(&rate.CurrencyRateID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError(fmt.Sprintf("rate for %s in exchange table %d already exists", m.Currency, m.ExchangeTableID), err)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to save currency rate", err)
	}

	rate.Mid = m.Mid
	if ts, err := parseTimestamp(createdAt); err == nil {
		rate.CreatedAt = ts
	}
	return nil
}
