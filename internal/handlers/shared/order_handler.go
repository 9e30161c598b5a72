package handlers

import (
	"gomarket/internal/models"
	"gomarket/internal/services"
	"gomarket/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder creates an order with a fresh pickup key. The key appears in
// this response and nowhere else.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var request services.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	merchantID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), merchantID, &request)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Order created", order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID")
		return
	}

	merchantID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), merchantID, orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Order retrieved", order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	merchantID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	status := models.OrderStatus(c.Query("status"))
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), merchantID, status, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Orders retrieved", orders, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

type updateDeliveryDataRequest struct {
	DeliveryData interface{} `json:"delivery_data" binding:"required"`
}

// UpdateDeliveryData replaces the payload on a still-pending order.
func (h *OrderHandler) UpdateDeliveryData(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID")
		return
	}

	var request updateDeliveryDataRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	merchantID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	order, err := h.orderService.UpdateDeliveryData(c.Request.Context(), merchantID, orderID, request.DeliveryData)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Delivery data updated", order)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID")
		return
	}

	merchantID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), merchantID, orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Order cancelled", order)
}
