package routes

import (
	"gomarket/internal/config"
	shared "gomarket/internal/handlers/shared"
	"gomarket/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupStatsRoutes wires the merchant dashboard endpoints.
func SetupStatsRoutes(r *gin.RouterGroup, statsHandler *shared.StatsHandler, cfg *config.Config) {
	stats := r.Group("/stats")
	stats.Use(middleware.AuthRequired(cfg.Security.JWTSecret), middleware.MerchantRequired())
	{
		stats.GET("/merchant", statsHandler.GetMerchantStats)
		stats.GET("/merchant/redemptions", statsHandler.ListRedemptions)
	}
}
