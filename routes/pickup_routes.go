package routes

import (
	"gomarket/internal/config"
	shared "gomarket/internal/handlers/shared"
	"gomarket/internal/middleware"
	"gomarket/pkg/cache"
	"gomarket/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SetupPickupRoutes wires the redemption endpoints. The public ones sit
// behind the per-IP rate limiter; code confirmation additionally requires a
// logged-in redeemer.
func SetupPickupRoutes(r *gin.RouterGroup, pickupHandler *shared.PickupHandler, cfg *config.Config, redis *cache.RedisCache, log *logger.Logger) {
	rateLimited := middleware.RateLimitMiddleware(redis, log, "pickup",
		int64(cfg.Security.PickupRateLimit), cfg.Security.PickupRateWindow)

	// Code redemption
	r.POST("/verify", rateLimited, pickupHandler.VerifyCode)
	r.POST("/confirm", rateLimited,
		middleware.AuthRequired(cfg.Security.JWTSecret), pickupHandler.ConfirmCode)

	// Order key redemption; the key is the only credential
	pickup := r.Group("/pickup")
	{
		pickup.POST("/verify", rateLimited, pickupHandler.VerifyKey)
		pickup.POST("/confirm", rateLimited, pickupHandler.ConfirmKey)

		// Public order tracking
		pickup.GET("/status/:orderNumber", pickupHandler.GetOrderStatus)

		// Redemption history for logged-in users
		pickup.GET("/records",
			middleware.AuthRequired(cfg.Security.JWTSecret), pickupHandler.ListMyRecords)
	}
}
