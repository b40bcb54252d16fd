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

// syncHandler triggers synchronization runs.
type syncHandler struct {
	syncService portssvc.SyncSvc
}

func newSyncHandler(ss portssvc.SyncSvc) *syncHandler {
	return &syncHandler{
		syncService: ss,
	}
}

// registerSyncRoutes registers the synchronization route behind the given middleware.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvc, mw ...gin.HandlerFunc) {
	h := newSyncHandler(syncService)

	chain := append(append([]gin.HandlerFunc{}, mw...), h.synchronize)
	rg.POST("/sync", chain...)
}

// synchronize godoc
// @Summary Synchronize exchange rates
// @Description Fetches rate tables for the range from the source, fills days without tables from the closest earlier day with data and stores what is missing. Days before the first published table of the range are left empty
// @Tags sync
// @Produce  json
// @Param   start_date query string true "First day of the range (YYYY-MM-DD)"
// @Param   end_date   query string true "Last day of the range (YYYY-MM-DD), at most 31 days after start_date"
// @Success 200 {object} dto.SyncResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid or too large date range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ErrorResponse "The source published no rate table within the range"
// @Failure 502 {object} dto.ErrorResponse "Rate source failure"
// @Failure 500 {object} dto.ErrorResponse "Failed to synchronize data"
// @Security BearerAuth
// @Router /sync [post]
func (h *syncHandler) synchronize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SyncRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		logger = logger.With(slog.String("user_id", userID))
	}
	logger.Info("Received synchronization request",
		slog.String("start_date", domain.FormatDate(req.StartDate)),
		slog.String("end_date", domain.FormatDate(req.EndDate)),
	)

	result, err := h.syncService.Synchronize(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		respondError(c, err, "Failed to synchronize data")
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncResponse(result))
}
