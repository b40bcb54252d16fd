package mapping

import (
	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	"github.com/SscSPs/currency_rates_api/internal/models"
)

// ToModelCurrencyRate converts a domain CurrencyRate to a model CurrencyRate
func ToModelCurrencyRate(d domain.CurrencyRate) models.CurrencyRate {
	return models.CurrencyRate{
		CurrencyRateID:  d.CurrencyRateID,
		ExchangeTableID: d.ExchangeTableID,
		Currency:        d.Currency,
		Mid:             d.Mid.Round(domain.MidPrecision),
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainCurrencyRate converts a model CurrencyRate to a domain CurrencyRate
func ToDomainCurrencyRate(m models.CurrencyRate) domain.CurrencyRate {
	return domain.CurrencyRate{
		CurrencyRateID:  m.CurrencyRateID,
		ExchangeTableID: m.ExchangeTableID,
		Currency:        m.Currency,
		Mid:             m.Mid,
		CreatedAt:       m.CreatedAt,
	}
}
