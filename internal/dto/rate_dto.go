package dto

import (
	"time"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GetRateRequest binds the query of a point-in-time rate lookup.
type GetRateRequest struct {
	Currency          string    `form:"currency" binding:"required,currencycode"`
	ExchangeDate      time.Time `form:"exchange_date" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	ReferenceCurrency string    `form:"reference_currency" binding:"omitempty,currencycode"`
}

// GetLatestRateRequest binds the query of a latest-known rate lookup.
type GetLatestRateRequest struct {
	Currency          string `form:"currency" binding:"required,currencycode"`
	ReferenceCurrency string `form:"reference_currency" binding:"omitempty,currencycode"`
}

// CurrencyRateResponse is returned by the rate lookup endpoints.
type CurrencyRateResponse struct {
	Currency          string          `json:"currency" example:"USD"`
	ReferenceCurrency string          `json:"reference_currency" example:"PLN"`
	ExchangeDate      string          `json:"exchange_date" example:"2025-10-20"`
	Rate              decimal.Decimal `json:"rate" swaggertype:"string" example:"3.9876"`
}

// ToCurrencyRateResponse renders a looked-up rate. The rate must carry its table.
func ToCurrencyRateResponse(rate *domain.CurrencyRate) CurrencyRateResponse {
	resp := CurrencyRateResponse{
		Currency: rate.Currency,
		Rate:     rate.Mid,
	}
	if rate.ExchangeTable != nil {
		resp.ReferenceCurrency = rate.ExchangeTable.ReferenceCurrency
		resp.ExchangeDate = domain.FormatDate(rate.ExchangeTable.ExchangeDate)
	}
	return resp
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
