package routes

import (
	"gomarket/internal/config"
	shared "gomarket/internal/handlers/shared"
	"gomarket/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPickupCodeRoutes wires the merchant-facing code issuance endpoints.
func SetupPickupCodeRoutes(r *gin.RouterGroup, codeHandler *shared.PickupCodeHandler, cfg *config.Config) {
	codes := r.Group("/pickup-codes")
	codes.Use(middleware.AuthRequired(cfg.Security.JWTSecret), middleware.MerchantRequired())
	{
		codes.POST("/product/:id", codeHandler.IssueCode)
		codes.GET("/product/:id", codeHandler.ListCodes)
		codes.PUT("/:id", codeHandler.UpdateCode)
		codes.DELETE("/:id", codeHandler.DeleteCode)
	}
}
