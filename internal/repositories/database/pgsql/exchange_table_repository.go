package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/apperrors"
	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_rates_api/internal/core/ports/repositories"
	"github.com/SscSPs/currency_rates_api/internal/models"
	"github.com/SscSPs/currency_rates_api/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const exchangeTableColumns = `exchange_table_id, exchange_date, reference_currency, created_at`

// PgxExchangeTableRepository implements the exchange table ports using pgx.
type PgxExchangeTableRepository struct {
	db querier
}

var _ portsrepo.ExchangeTableRepositoryFacade = (*PgxExchangeTableRepository)(nil)

func newPgxExchangeTableRepository(db querier) *PgxExchangeTableRepository {
	return &PgxExchangeTableRepository{db: db}
}

// FindExchangeTablesInRange lists tables dated within [from, to], oldest first.
func (r *PgxExchangeTableRepository) FindExchangeTablesInRange(ctx context.Context, referenceCurrency string, from, to time.Time) ([]domain.ExchangeTable, error) {
	query := `
		SELECT ` + exchangeTableColumns + `
		FROM exchange_tables
		WHERE reference_currency = $1 AND exchange_date BETWEEN $2 AND $3
		ORDER BY exchange_date;
	`
	rows, err := r.db.Query(ctx, query, referenceCurrency, domain.NormalizeDate(from), domain.NormalizeDate(to))
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list exchange tables", err)
	}

	tables, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ExchangeTable])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan exchange tables", err)
	}
	return mapping.ToDomainExchangeTableSlice(tables), nil
}

// FindExchangeTableByDate returns the table for one date.
func (r *PgxExchangeTableRepository) FindExchangeTableByDate(ctx context.Context, exchangeDate time.Time, referenceCurrency string) (*domain.ExchangeTable, error) {
	query := `
		SELECT ` + exchangeTableColumns + `
		FROM exchange_tables
		WHERE exchange_date = $1 AND reference_currency = $2;
	`
	row := r.db.QueryRow(ctx, query, domain.NormalizeDate(exchangeDate), referenceCurrency)
	return r.one(row, fmt.Sprintf("exchange table for %s/%s not found", domain.FormatDate(exchangeDate), referenceCurrency))
}

// FindLatestExchangeTable returns the most recent table.
func (r *PgxExchangeTableRepository) FindLatestExchangeTable(ctx context.Context, referenceCurrency string) (*domain.ExchangeTable, error) {
	query := `
		SELECT ` + exchangeTableColumns + `
		FROM exchange_tables
		WHERE reference_currency = $1
		ORDER BY exchange_date DESC
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, referenceCurrency)
	return r.one(row, "no exchange table found for "+referenceCurrency)
}

// SaveExchangeTable inserts the table and assigns its identity.
func (r *PgxExchangeTableRepository) SaveExchangeTable(ctx context.Context, table *domain.ExchangeTable) error {
	m := mapping.ToModelExchangeTable(*table)
	query := `
		INSERT INTO exchange_tables (exchange_date, reference_currency)
		VALUES ($1, $2)
		RETURNING exchange_table_id, created_at;
	`
	err := r.db.QueryRow(ctx, query, m.ExchangeDate, m.ReferenceCurrency).Scan(&table.ExchangeTableID, &table.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("exchange table for "+domain.FormatDate(m.ExchangeDate)+" already exists", err)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to save exchange table", err)
	}
	table.ExchangeDate = m.ExchangeDate
	return nil
}

func (r *PgxExchangeTableRepository) one(row pgx.Row, notFound string) (*domain.ExchangeTable, error) {
	var m models.ExchangeTable
	err := row.Scan(&m.ExchangeTableID, &m.ExchangeDate, &m.ReferenceCurrency, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(notFound)
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find exchange table", err)
	}
	table := mapping.ToDomainExchangeTable(m)
	return &table, nil
}
