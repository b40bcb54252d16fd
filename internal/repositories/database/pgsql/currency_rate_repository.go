package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/currency_rates_api/internal/apperrors"
	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_rates_api/internal/core/ports/repositories"
	"github.com/SscSPs/currency_rates_api/internal/models"
	"github.com/SscSPs/currency_rates_api/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxCurrencyRateRepository implements the currency rate ports using pgx.
type PgxCurrencyRateRepository struct {
	db querier
}

var _ portsrepo.CurrencyRateRepositoryFacade = (*PgxCurrencyRateRepository)(nil)

func newPgxCurrencyRateRepository(db querier) *PgxCurrencyRateRepository {
	return &PgxCurrencyRateRepository{db: db}
}

// FindCurrencyRate returns the rate of currency inside one table.
func (r *PgxCurrencyRateRepository) FindCurrencyRate(ctx context.Context, exchangeTableID int64, currency string) (*domain.CurrencyRate, error) {
	query := `
		SELECT currency_rate_id, exchange_table_id, currency, mid, created_at
		FROM currency_rates
		WHERE exchange_table_id = $1 AND currency = $2;
	`
	var m models.CurrencyRate
	err := r.db.QueryRow(ctx, query, exchangeTableID, currency).Scan(
		&m.CurrencyRateID, &m.ExchangeTableID, &m.Currency, &m.Mid, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("rate for %s in exchange table %d not found", currency, exchangeTableID))
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find currency rate", err)
	}

	rate := mapping.ToDomainCurrencyRate(m)
	return &rate, nil
}

// SaveCurrencyRate inserts the rate and assigns its identity.
func (r *PgxCurrencyRateRepository) SaveCurrencyRate(ctx context.Context, rate *domain.CurrencyRate) error {
	m := mapping.ToModelCurrencyRate(*rate)
	query := `
		INSERT INTO currency_rates (exchange_table_id, currency, mid)
		VALUES ($1, $2, $3)
		RETURNING currency_rate_id, created_at;
	`
	err := r.db.QueryRow(ctx, query, m.ExchangeTableID, m.Currency, m.Mid).Scan(&rate.CurrencyRateID, &rate.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError(fmt.Sprintf("rate for %s in exchange table %d already exists", m.Currency, m.ExchangeTableID), err)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to save currency rate", err)
	}
	rate.Mid = m.Mid
	return nil
}
