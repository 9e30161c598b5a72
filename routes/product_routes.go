package routes

import (
	"gomarket/internal/config"
	shared "gomarket/internal/handlers/shared"
	"gomarket/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupProductRoutes wires the merchant-facing product catalog endpoints.
func SetupProductRoutes(r *gin.RouterGroup, productHandler *shared.ProductHandler, cfg *config.Config) {
	products := r.Group("/products")
	products.Use(middleware.AuthRequired(cfg.Security.JWTSecret), middleware.MerchantRequired())
	{
		products.POST("", productHandler.CreateProduct)
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
	}
}
