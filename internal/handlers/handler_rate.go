package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
	portssvc "github.com/SscSPs/currency_rates_api/internal/core/ports/services"
	"github.com/SscSPs/currency_rates_api/internal/dto"
	"github.com/SscSPs/currency_rates_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests for stored currency rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers the rate lookup routes.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/currency/rate")
	{
		rates.GET("", h.getRate)
		rates.GET("/latest", h.getLatestRate)
	}
}

// getRate godoc
// @Summary Get a currency rate for a date
// @Description Returns the mid rate of a currency in the exchange table of the given date
// @Tags rates
// @Produce  json
// @Param   currency           query string true  "Currency code (3 letters)" minlength(3) maxlength(3)
// @Param   exchange_date      query string true  "Exchange date (YYYY-MM-DD)"
// @Param   reference_currency query string false "Reference currency code, defaults to the configured one" minlength(3) maxlength(3)
// @Success 200 {object} dto.CurrencyRateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid currency code or date"
// @Failure 404 {object} dto.ErrorResponse "No table for the date or no rate for the currency"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve currency rate"
// @Router /currency/rate [get]
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GetRateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rate, err := h.rateService.GetRateByDate(c.Request.Context(), req.Currency, req.ReferenceCurrency, req.ExchangeDate)
	if err != nil {
		respondError(c, err, "Failed to retrieve currency rate")
		return
	}

	logger.Debug("Currency rate found",
		slog.String("currency", rate.Currency),
		slog.String("exchange_date", domain.FormatDate(req.ExchangeDate)),
	)
	c.JSON(http.StatusOK, dto.ToCurrencyRateResponse(rate))
}

// getLatestRate godoc
// @Summary Get the latest known currency rate
// @Description Returns the mid rate of a currency in the most recent exchange table
// @Tags rates
// @Produce  json
// @Param   currency           query string true  "Currency code (3 letters)" minlength(3) maxlength(3)
// @Param   reference_currency query string false "Reference currency code, defaults to the configured one" minlength(3) maxlength(3)
// @Success 200 {object} dto.CurrencyRateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid currency code"
// @Failure 404 {object} dto.ErrorResponse "No tables yet or no rate for the currency in the latest table"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve currency rate"
// @Router /currency/rate/latest [get]
func (h *rateHandler) getLatestRate(c *gin.Context) {
	var req dto.GetLatestRateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rate, err := h.rateService.GetLatestRate(c.Request.Context(), req.Currency, req.ReferenceCurrency)
	if err != nil {
		respondError(c, err, "Failed to retrieve currency rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyRateResponse(rate))
}
