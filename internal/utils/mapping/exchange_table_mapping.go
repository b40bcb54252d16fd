package mapping

import (
	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	"github.com/SscSPs/currency_rates_api/internal/models"
)

// ToModelExchangeTable converts a domain ExchangeTable to a model ExchangeTable
func ToModelExchangeTable(d domain.ExchangeTable) models.ExchangeTable {
	return models.ExchangeTable{
		ExchangeTableID:   d.ExchangeTableID,
		ExchangeDate:      domain.NormalizeDate(d.ExchangeDate),
		ReferenceCurrency: d.ReferenceCurrency,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainExchangeTable converts a model ExchangeTable to a domain ExchangeTable
func ToDomainExchangeTable(m models.ExchangeTable) domain.ExchangeTable {
	return domain.ExchangeTable{
		ExchangeTableID:   m.ExchangeTableID,
		ExchangeDate:      domain.NormalizeDate(m.ExchangeDate),
		ReferenceCurrency: m.ReferenceCurrency,
		CreatedAt:         m.CreatedAt,
	}
}

// ToDomainExchangeTableSlice converts a slice of model ExchangeTables to a slice of domain ExchangeTables
func ToDomainExchangeTableSlice(ms []models.ExchangeTable) []domain.ExchangeTable {
	ds := make([]domain.ExchangeTable, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeTable(m)
	}
	return ds
}
