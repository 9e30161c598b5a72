package handlers

import (
	"gomarket/internal/services"
	"gomarket/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PickupCodeHandler struct {
	codeService services.PickupCodeService
}

func NewPickupCodeHandler(codeService services.PickupCodeService) *PickupCodeHandler {
	return &PickupCodeHandler{
		codeService: codeService,
	}
}

// IssueCode mints a new pickup code for one of the merchant's products.
func (h *PickupCodeHandler) IssueCode(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	var request services.IssuePickupCodeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	merchantID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	code, err := h.codeService.IssueCode(c.Request.Context(), merchantID, productID, &request)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Pickup code issued", code)
}

// ListCodes returns the codes attached to one of the merchant's products.
func (h *PickupCodeHandler) ListCodes(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	merchantID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	codes, err := h.codeService.ListCodes(c.Request.Context(), merchantID, productID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Pickup codes retrieved", codes, &utils.Meta{
		Total: int64(len(codes)),
		Count: len(codes),
	})
}

// UpdateCode toggles or reconfigures a code.
func (h *PickupCodeHandler) UpdateCode(c *gin.Context) {
	codeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pickup code ID")
		return
	}

	var request services.UpdatePickupCodeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	merchantID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	code, err := h.codeService.UpdateCode(c.Request.Context(), merchantID, codeID, &request)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pickup code updated", code)
}

// DeleteCode soft-deletes a code, freeing its slot under the product cap.
func (h *PickupCodeHandler) DeleteCode(c *gin.Context) {
	codeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pickup code ID")
		return
	}

	merchantID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	if err := h.codeService.DeleteCode(c.Request.Context(), merchantID, codeID); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Pickup code deleted", nil)
}
