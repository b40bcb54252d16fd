package handlers

import (
	"net/http"

	"github.com/SscSPs/currency_rates_api/cmd/docs"
	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the service index.
// @Description Name, version and the available endpoints.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"name":    docs.SwaggerInfo.Title,
		"version": docs.SwaggerInfo.Version,
		"endpoints": gin.H{
			"rate":        "GET /api/v1/currency/rate?currency=USD&exchange_date=2025-10-20&reference_currency=PLN",
			"latest_rate": "GET /api/v1/currency/rate/latest?currency=USD&reference_currency=PLN",
			"sync":        "POST /api/v1/sync?start_date=2025-10-20&end_date=2025-10-25",
			"health":      "GET /health",
		},
	})
}
