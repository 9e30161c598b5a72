package services

import (
	"context"
	"testing"
	"time"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func orderServiceFixture(product *models.Product) (OrderService, *stubOrderRepo) {
	productRepo := &stubProductRepo{
		getForMerchantFn: func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.Product, error) {
			if product == nil {
				return nil, interfaces.ErrNotFound
			}
			return product, nil
		},
	}
	orderRepo := &stubOrderRepo{
		createFn: func(_ context.Context, order *models.Order) error {
			order.ID = primitive.NewObjectID()
			return nil
		},
	}
	return NewOrderService(orderRepo, productRepo, testLogger()), orderRepo
}

func TestCreateOrder(t *testing.T) {
	product := fixtureProduct(primitive.NewObjectID())
	svc, _ := orderServiceFixture(product)

	order, err := svc.CreateOrder(context.Background(), primitive.NewObjectID(), &CreateOrderRequest{
		ProductID: product.ID.Hex(),
		Quantity:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.PickupKey, 32)
	assert.InDelta(t, product.Price*3, order.TotalAmount, 0.001)
	assert.Equal(t, product.DeliveryData, order.DeliveryData,
		"order inherits the product payload when none is supplied")

	// Default 30 day window.
	expectedExpiry := time.Now().AddDate(0, 0, models.OrderDefaultExpiryDays)
	assert.WithinDuration(t, expectedExpiry, order.ExpiresAt, time.Minute)
}

func TestCreateOrderRejections(t *testing.T) {
	product := fixtureProduct(primitive.NewObjectID())
	product.Stock = 2
	svc, _ := orderServiceFixture(product)
	merchantID := primitive.NewObjectID()

	_, err := svc.CreateOrder(context.Background(), merchantID, &CreateOrderRequest{
		ProductID: "not-an-id", Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateOrder(context.Background(), merchantID, &CreateOrderRequest{
		ProductID: product.ID.Hex(), Quantity: 1, ExpiryDays: models.OrderMaxExpiryDays + 1,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateOrder(context.Background(), merchantID, &CreateOrderRequest{
		ProductID: product.ID.Hex(), Quantity: 3,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	product.IsActive = false
	_, err = svc.CreateOrder(context.Background(), merchantID, &CreateOrderRequest{
		ProductID: product.ID.Hex(), Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrNotFound, "inactive products cannot take orders")
}

func TestCancelOrder(t *testing.T) {
	product := fixtureProduct(primitive.NewObjectID())
	svc, orderRepo := orderServiceFixture(product)

	orderRepo.markCancelledFn = func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.Order, error) {
		return &models.Order{
			OrderNumber: "AP1TEST0004",
			ProductID:   product.ID,
			Quantity:    4,
			Status:      models.OrderStatusCancelled,
		}, nil
	}

	order, err := svc.CancelOrder(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
}

func TestCancelOrderConflict(t *testing.T) {
	svc, orderRepo := orderServiceFixture(fixtureProduct(primitive.NewObjectID()))
	orderRepo.markCancelledFn = func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.Order, error) {
		return nil, interfaces.ErrStatusConflict
	}

	_, err := svc.CancelOrder(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound, "delivered orders cannot be cancelled")
}
