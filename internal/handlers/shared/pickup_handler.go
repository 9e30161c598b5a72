package handlers

import (
	"gomarket/internal/models"
	"gomarket/internal/services"
	"gomarket/internal/utils"

	"github.com/gin-gonic/gin"
)

type PickupHandler struct {
	pickupService services.PickupService
}

func NewPickupHandler(pickupService services.PickupService) *PickupHandler {
	return &PickupHandler{
		pickupService: pickupService,
	}
}

type codeRequest struct {
	Code string `json:"code" binding:"required"`
}

type keyRequest struct {
	PickupKey    string               `json:"pickup_key" binding:"required"`
	CustomerInfo *models.CustomerInfo `json:"customer_info,omitempty"`
}

// VerifyCode previews a pickup code without consuming it.
func (h *PickupHandler) VerifyCode(c *gin.Context) {
	var request codeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.pickupService.VerifyPickupCode(c.Request.Context(), request.Code)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pickup code is valid", result)
}

// ConfirmCode redeems a pickup code for the authenticated user.
func (h *PickupHandler) ConfirmCode(c *gin.Context) {
	var request codeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	result, err := h.pickupService.ConfirmPickupCode(c.Request.Context(), request.Code, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pickup code redeemed", result)
}

// VerifyKey previews an order pickup key without consuming it.
func (h *PickupHandler) VerifyKey(c *gin.Context) {
	var request keyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.pickupService.VerifyPickupKey(c.Request.Context(), request.PickupKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pickup key is valid", result)
}

// ConfirmKey redeems an order pickup key. The key itself is the credential,
// so this endpoint takes no authentication.
func (h *PickupHandler) ConfirmKey(c *gin.Context) {
	var request keyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.pickupService.ConfirmPickupKey(c.Request.Context(), request.PickupKey, request.CustomerInfo)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Order picked up", result)
}

// GetOrderStatus is the public tracking endpoint, keyed by order number.
func (h *PickupHandler) GetOrderStatus(c *gin.Context) {
	orderNumber := c.Param("orderNumber")
	if orderNumber == "" {
		utils.BadRequestResponse(c, "Order number is required")
		return
	}

	result, err := h.pickupService.GetOrderStatus(c.Request.Context(), orderNumber)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Order status retrieved", result)
}

// ListMyRecords returns the authenticated user's redemption history.
func (h *PickupHandler) ListMyRecords(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	records, total, err := h.pickupService.ListUserPickupRecords(c.Request.Context(), userID, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Pickup records retrieved", records, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
