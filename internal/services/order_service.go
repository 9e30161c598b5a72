package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"
	"gomarket/internal/utils"
	"gomarket/internal/validators"
	"gomarket/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderService is the merchant side of order fulfillment: creating orders
// with fresh pickup keys, managing payloads, cancelling. Redemption of the
// keys is PickupService's job.
type OrderService interface {
	CreateOrder(ctx context.Context, merchantID primitive.ObjectID, req *CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, merchantID, orderID primitive.ObjectID) (*models.Order, error)
	ListOrders(ctx context.Context, merchantID primitive.ObjectID, status models.OrderStatus, params *utils.PaginationParams) ([]*models.Order, int64, error)
	UpdateDeliveryData(ctx context.Context, merchantID, orderID primitive.ObjectID, data interface{}) (*models.Order, error)
	CancelOrder(ctx context.Context, merchantID, orderID primitive.ObjectID) (*models.Order, error)
}

type CreateOrderRequest struct {
	ProductID    string               `json:"product_id" binding:"required"`
	Quantity     int                  `json:"quantity" binding:"required,min=1"`
	ExpiryDays   int                  `json:"expiry_days,omitempty"`
	DeliveryData interface{}          `json:"delivery_data,omitempty"`
	CustomerInfo *models.CustomerInfo `json:"customer_info,omitempty"`
}

type orderService struct {
	orderRepo   interfaces.OrderRepository
	productRepo interfaces.ProductRepository
	logger      *logger.Logger
}

func NewOrderService(
	orderRepo interfaces.OrderRepository,
	productRepo interfaces.ProductRepository,
	logger *logger.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// CreateOrder mints the order number plus pickup key for a product the
// merchant owns. The key is returned once here; afterwards it only ever
// travels from customer to redeem endpoint. Stock is checked but not
// decremented; inventory bookkeeping stays with the merchant.
func (s *orderService) CreateOrder(ctx context.Context, merchantID primitive.ObjectID, req *CreateOrderRequest) (*models.Order, error) {
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, validationError("product_id is not a valid id")
	}

	expiryDays := req.ExpiryDays
	if expiryDays == 0 {
		expiryDays = models.OrderDefaultExpiryDays
	}
	if expiryDays < models.OrderMinExpiryDays || expiryDays > models.OrderMaxExpiryDays {
		return nil, validationError(fmt.Sprintf("expiry_days must be between %d and %d",
			models.OrderMinExpiryDays, models.OrderMaxExpiryDays))
	}

	product, err := s.productRepo.GetByIDForMerchant(ctx, productID, merchantID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if !product.IsActive {
		return nil, ErrNotFound
	}
	if product.Stock < req.Quantity {
		return nil, ErrInsufficientStock
	}

	deliveryData := req.DeliveryData
	if deliveryData == nil {
		deliveryData = product.DeliveryData
	}

	now := time.Now()
	order := &models.Order{
		OrderNumber:  utils.GenerateOrderNumber(),
		ProductID:    product.ID,
		MerchantID:   merchantID,
		PickupKey:    utils.GeneratePickupKey(),
		Quantity:     req.Quantity,
		TotalAmount:  product.Price * float64(req.Quantity),
		Status:       models.OrderStatusPending,
		DeliveryData: deliveryData,
		CustomerInfo: req.CustomerInfo,
		ExpiresAt:    now.AddDate(0, 0, expiryDays),
	}

	if verrs := validators.ValidateStruct(order); len(verrs) > 0 {
		return nil, validationError(verrs.Error())
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"order_number": order.OrderNumber,
		"product_id":   product.ID.Hex(),
		"merchant_id":  merchantID.Hex(),
	}).Info("Order created")

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, merchantID, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.MerchantID != merchantID {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, merchantID primitive.ObjectID, status models.OrderStatus, params *utils.PaginationParams) ([]*models.Order, int64, error) {
	return s.orderRepo.ListByMerchant(ctx, merchantID, status, params)
}

// UpdateDeliveryData swaps the payload on a still-pending order. Once the
// order is delivered the payload the customer received is immutable.
func (s *orderService) UpdateDeliveryData(ctx context.Context, merchantID, orderID primitive.ObjectID, data interface{}) (*models.Order, error) {
	order, err := s.orderRepo.UpdateDeliveryData(ctx, orderID, merchantID, data)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) || errors.Is(err, interfaces.ErrStatusConflict) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update delivery data: %w", err)
	}
	return order, nil
}

func (s *orderService) CancelOrder(ctx context.Context, merchantID, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orderRepo.MarkCancelled(ctx, orderID, merchantID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) || errors.Is(err, interfaces.ErrStatusConflict) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	s.logger.WithField("order_number", order.OrderNumber).Info("Order cancelled")
	return order, nil
}
