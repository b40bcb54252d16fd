package handlers

import (
	"log/slog"
	"sync"

	"github.com/SscSPs/currency_rates_api/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the "currencycode" rule to gin's binding validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			slog.Warn("gin binding validator is not go-playground/validator, currencycode rule not registered")
			return
		}
		if err := v.RegisterValidation("currencycode", validateCurrencyCode); err != nil {
			slog.Error("Failed to register currencycode validation", slog.String("error", err.Error()))
		}
	})
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return utils.IsCurrencyCode(fl.Field().String())
}
