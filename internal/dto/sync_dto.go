package dto

import (
	"time"

	"github.com/SscSPs/currency_rates_api/internal/core/domain"
)

// SyncRequest binds the query of a synchronization run.
type SyncRequest struct {
	StartDate time.Time `form:"start_date" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	EndDate   time.Time `form:"end_date" binding:"required" time_format:"2006-01-02" time_utc:"1"`
}

// SyncResponse reports what a synchronization run wrote.
type SyncResponse struct {
	Message       string `json:"message" example:"Data synchronized successfully"`
	StartDate     string `json:"start_date" example:"2025-10-20"`
	EndDate       string `json:"end_date" example:"2025-10-25"`
	TablesCreated int    `json:"tables_created" example:"6"`
	RatesCreated  int    `json:"rates_created" example:"198"`
}

// ToSyncResponse renders a sync result.
func ToSyncResponse(result *domain.SyncResult) SyncResponse {
	return SyncResponse{
		Message:       "Data synchronized successfully",
		StartDate:     domain.FormatDate(result.StartDate),
		EndDate:       domain.FormatDate(result.EndDate),
		TablesCreated: result.TablesCreated,
		RatesCreated:  result.RatesCreated,
	}
}
