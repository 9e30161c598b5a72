package middleware

import (
	"strings"

	"gomarket/internal/models"
	"gomarket/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
	ContextEmail    = "user_email"
)

// AuthRequired validates the bearer token and puts the caller's identity on
// the request context.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

// MerchantRequired allows merchants and admins through.
func MerchantRequired() gin.HandlerFunc {
	return roleRequired(string(models.UserRoleMerchant), string(models.UserRoleAdmin))
}

// AdminRequired allows admins only.
func AdminRequired() gin.HandlerFunc {
	return roleRequired(string(models.UserRoleAdmin))
}

func roleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextUserRole)
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if ok {
			for _, allowed := range roles {
				if roleStr == allowed {
					c.Next()
					return
				}
			}
		}

		utils.ForbiddenResponse(c)
		c.Abort()
	}
}
