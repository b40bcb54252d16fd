package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_rates_api/internal/apperrors"
	"github.com/SscSPs/currency_rates_api/internal/dto"
	"github.com/SscSPs/currency_rates_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto a status code and an ErrorResponse.
// Internal failures are logged and answered without their cause.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request", Detail: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found", Detail: err.Error()})
	case errors.Is(err, apperrors.ErrNoSeedData):
		logger.Warn("No source rates for synchronization range", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "No rate tables in range", Detail: err.Error()})
	case errors.Is(err, apperrors.ErrSourceFetch):
		logger.Error("Rate source failure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "Failed to fetch data from source", Detail: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

// respondBindError answers a request whose query failed to bind.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).
		Warn("Failed to bind query", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request", Detail: err.Error()})
}
