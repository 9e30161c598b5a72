package routes

import (
	"gomarket/internal/config"
	shared "gomarket/internal/handlers/shared"
	"gomarket/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes wires the merchant-facing order endpoints.
func SetupOrderRoutes(r *gin.RouterGroup, orderHandler *shared.OrderHandler, cfg *config.Config) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthRequired(cfg.Security.JWTSecret), middleware.MerchantRequired())
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/delivery", orderHandler.UpdateDeliveryData)
		orders.PUT("/:id/cancel", orderHandler.CancelOrder)
	}
}
