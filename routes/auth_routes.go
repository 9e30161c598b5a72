package routes

import (
	"gomarket/internal/config"
	shared "gomarket/internal/handlers/shared"
	"gomarket/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes wires registration, login and profile endpoints.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *shared.AuthHandler, cfg *config.Config) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		auth.GET("/profile",
			middleware.AuthRequired(cfg.Security.JWTSecret), authHandler.GetProfile)
	}
}
