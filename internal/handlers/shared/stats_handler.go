package handlers

import (
	"gomarket/internal/services"
	"gomarket/internal/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetMerchantStats returns the dashboard aggregates for the caller.
func (h *StatsHandler) GetMerchantStats(c *gin.Context) {
	merchantID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	stats, err := h.statsService.GetMerchantStats(c.Request.Context(), merchantID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Stats retrieved", stats)
}

// ListRedemptions returns the merchant's redemption ledger entries.
func (h *StatsHandler) ListRedemptions(c *gin.Context) {
	merchantID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	records, total, err := h.statsService.ListMerchantRedemptions(c.Request.Context(), merchantID, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Redemptions retrieved", records, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
