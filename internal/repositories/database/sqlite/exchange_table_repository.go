package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/apperrors"
	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_rates_api/internal/core/ports/repositories"
	"github.com/SscSPs/currency_rates_api/internal/models"
	"github.com/SscSPs/currency_rates_api/internal/utils/mapping"
)

const exchangeTableColumns = `exchange_table_id, exchange_date, reference_currency, created_at`

// ExchangeTableRepository implements the exchange table ports on sqlite.
// Dates are stored as ISO-8601 text so range predicates compare lexically.
type ExchangeTableRepository struct {
	db dbtx
}

var _ portsrepo.ExchangeTableRepositoryFacade = (*ExchangeTableRepository)(nil)

func newExchangeTableRepository(db dbtx) *ExchangeTableRepository {
	return &ExchangeTableRepository{db: db}
}

// FindExchangeTablesInRange lists tables dated within [from, to], oldest first.
func (r *ExchangeTableRepository) FindExchangeTablesInRange(ctx context.Context, referenceCurrency string, from, to time.Time) ([]domain.ExchangeTable, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+exchangeTableColumns+` FROM exchange_tables
		WHERE reference_currency = ? AND exchange_date BETWEEN ? AND ?
		ORDER BY exchange_date`,
		referenceCurrency, domain.FormatDate(from), domain.FormatDate(to),
	)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list exchange tables", err)
	}
	defer rows.Close()

	var tables []models.ExchangeTable
	for rows.Next() {
		m, err := scanExchangeTable(rows)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan exchange table", err)
		}
		tables = append(tables, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating exchange tables", err)
	}
	return mapping.ToDomainExchangeTableSlice(tables), nil
}

// FindExchangeTableByDate returns the table for one date.
func (r *ExchangeTableRepository) FindExchangeTableByDate(ctx context.Context, exchangeDate time.Time, referenceCurrency string) (*domain.ExchangeTable, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+exchangeTableColumns+` FROM exchange_tables
		WHERE exchange_date = ? AND reference_currency = ?`,
		domain.FormatDate(exchangeDate), referenceCurrency,
	)
	return r.one(row, fmt.Sprintf("exchange table for %s/%s not found", domain.FormatDate(exchangeDate), referenceCurrency))
}

// FindLatestExchangeTable returns the most recent table.
func (r *ExchangeTableRepository) FindLatestExchangeTable(ctx context.Context, referenceCurrency string) (*domain.ExchangeTable, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+exchangeTableColumns+` FROM exchange_tables
		WHERE reference_currency = ?
		ORDER BY exchange_date DESC
		LIMIT 1`,
		referenceCurrency,
	)
	return r.one(row, "no exchange table found for "+referenceCurrency)
}

// SaveExchangeTable inserts the table and assigns its identity.
func (r *ExchangeTableRepository) SaveExchangeTable(ctx context.Context, table *domain.ExchangeTable) error {
	m := mapping.ToModelExchangeTable(*table)

	var createdAt string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO exchange_tables (exchange_date, reference_currency)
		VALUES (?, ?)
		RETURNING exchange_table_id, created_at`,
		domain.FormatDate(m.ExchangeDate), m.ReferenceCurrency,
	).Scan(&table.ExchangeTableID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewDuplicateError("exchange table for "+domain.FormatDate(m.ExchangeDate)+" already exists", err)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to save exchange table", err)
	}

	table.ExchangeDate = m.ExchangeDate
	if ts, err := parseTimestamp(createdAt); err == nil {
		table.CreatedAt = ts
	}
	return nil
}

func (r *ExchangeTableRepository) one(row *sql.Row, notFound string) (*domain.ExchangeTable, error) {
	m, err := scanExchangeTable(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(notFound)
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find exchange table", err)
	}
	table := mapping.ToDomainExchangeTable(m)
	return &table, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExchangeTable(s scanner) (models.ExchangeTable, error) {
	var (
		m               models.ExchangeTable
		date, createdAt string
	)
	if err := s.Scan(&m.ExchangeTableID, &date, &m.ReferenceCurrency, &createdAt); err != nil {
		return models.ExchangeTable{}, err
	}
	d, err := domain.ParseDate(date)
	if err != nil {
		return models.ExchangeTable{}, fmt.Errorf("parse exchange_date: %w", err)
	}
	m.ExchangeDate = d
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return models.ExchangeTable{}, err
	}
	return m, nil
}
