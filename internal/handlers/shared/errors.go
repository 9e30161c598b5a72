package handlers

import (
	"errors"
	"net/http"

	"gomarket/internal/services"
	"gomarket/internal/utils"

	"github.com/gin-gonic/gin"
)

// handleServiceError translates the service error taxonomy into HTTP. The
// service layer never picks status codes itself.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidFormat):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_FORMAT", services.ErrInvalidFormat.Error())
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", services.ErrNotFound.Error())
	case errors.Is(err, services.ErrExpired):
		utils.ErrorResponse(c, http.StatusBadRequest, "CODE_EXPIRED", services.ErrExpired.Error())
	case errors.Is(err, services.ErrQuotaExhausted):
		utils.ErrorResponse(c, http.StatusBadRequest, "QUOTA_EXHAUSTED", services.ErrQuotaExhausted.Error())
	case errors.Is(err, services.ErrAlreadyRedeemed):
		utils.ErrorResponse(c, http.StatusBadRequest, "ALREADY_REDEEMED", services.ErrAlreadyRedeemed.Error())
	case errors.Is(err, services.ErrCodeLimitReached):
		utils.ErrorResponse(c, http.StatusBadRequest, "CODE_LIMIT_REACHED", services.ErrCodeLimitReached.Error())
	case errors.Is(err, services.ErrInsufficientStock):
		utils.ErrorResponse(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", services.ErrInsufficientStock.Error())
	case errors.Is(err, services.ErrEmailTaken):
		utils.ErrorResponse(c, http.StatusConflict, "EMAIL_TAKEN", services.ErrEmailTaken.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		utils.ErrorResponse(c, http.StatusConflict, "USERNAME_TAKEN", services.ErrUsernameTaken.Error())
	case errors.Is(err, services.ErrInvalidLogin):
		utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", services.ErrInvalidLogin.Error())
	case errors.Is(err, services.ErrAccountDisabled):
		utils.ErrorResponse(c, http.StatusForbidden, "ACCOUNT_DISABLED", services.ErrAccountDisabled.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}
