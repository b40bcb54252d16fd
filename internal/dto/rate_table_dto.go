package dto

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	"github.com/SscSPs/currency_rates_api/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var rateTableValidator = validator.New(validator.WithRequiredStructEnabled())

// RateDTO is one currency entry of a published rate table.
type RateDTO struct {
	Code     string          `json:"code" validate:"required,len=3,alpha"`
	Currency string          `json:"currency"`
	Mid      decimal.Decimal `json:"mid"`
}

// RateTableDTO is the set of rates the source published for one effective date.
type RateTableDTO struct {
	Table         string    `json:"table,omitempty"`
	No            string    `json:"no,omitempty"`
	EffectiveDate string    `json:"effectiveDate" validate:"required,datetime=2006-01-02"`
	Rates         []RateDTO `json:"rates" validate:"dive"`
}

// Validate checks the shape of a decoded table.
func (t RateTableDTO) Validate() error {
	if err := rateTableValidator.Struct(t); err != nil {
		return fmt.Errorf("invalid rate table %q: %w", t.EffectiveDate, err)
	}
	for _, r := range t.Rates {
		if !r.Mid.IsPositive() {
			return fmt.Errorf("invalid rate table %q: mid for %s must be positive", t.EffectiveDate, r.Code)
		}
		if !utils.MidFits(r.Mid) {
			return fmt.Errorf("invalid rate table %q: mid %s for %s exceeds %d significant digits",
				t.EffectiveDate, r.Mid, r.Code, domain.MidDigits)
		}
	}
	return nil
}

// Date parses EffectiveDate.
func (t RateTableDTO) Date() (time.Time, error) {
	return domain.ParseDate(t.EffectiveDate)
}

// ToObject materializes the rate against an already known table.
func (r RateDTO) ToObject(table *domain.ExchangeTable) domain.CurrencyRate {
	rate := domain.CurrencyRate{
		Currency:      utils.NormalizeCurrencyCode(r.Code),
		Mid:           utils.RoundMid(r.Mid),
		ExchangeTable: table,
	}
	rate.BindTable()
	return rate
}

// ToObjects materializes a new, unsaved table for date together with its rates.
// The date may differ from EffectiveDate when the table is carried forward.
func (t RateTableDTO) ToObjects(date time.Time, referenceCurrency string) (*domain.ExchangeTable, []domain.CurrencyRate) {
	table := &domain.ExchangeTable{
		ExchangeDate:      domain.NormalizeDate(date),
		ReferenceCurrency: utils.NormalizeCurrencyCode(referenceCurrency),
	}
	rates := make([]domain.CurrencyRate, 0, len(t.Rates))
	for _, r := range t.Rates {
		rates = append(rates, r.ToObject(table))
	}
	return table, rates
}

// MergeRateTables combines entries sharing an effective date by concatenating their rates.
// The result is ordered by date; the inputs are left untouched.
func MergeRateTables(tables []RateTableDTO) []RateTableDTO {
	byDate := make(map[string]*RateTableDTO, len(tables))
	order := make([]string, 0, len(tables))
	for _, t := range tables {
		merged, ok := byDate[t.EffectiveDate]
		if !ok {
			merged = &RateTableDTO{EffectiveDate: t.EffectiveDate}
			byDate[t.EffectiveDate] = merged
			order = append(order, t.EffectiveDate)
		}
		merged.Rates = append(merged.Rates, t.Rates...)
	}

	sort.Strings(order)
	out := make([]RateTableDTO, 0, len(order))
	for _, date := range order {
		out = append(out, *byDate[date])
	}
	return out
}

// IndexByDate keys merged tables by effective date.
func IndexByDate(tables []RateTableDTO) map[string]RateTableDTO {
	idx := make(map[string]RateTableDTO, len(tables))
	for _, t := range tables {
		idx[t.EffectiveDate] = t
	}
	return idx
}
