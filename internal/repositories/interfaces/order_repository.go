package interfaces

import (
	"context"
	"time"

	"gomarket/internal/models"
	"gomarket/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)

	// GetPendingByKey resolves a pickup key to its order only while the order
	// is still pending and inside its pickup window.
	GetPendingByKey(ctx context.Context, pickupKey string, now time.Time) (*models.Order, error)

	// MarkDelivered performs the compare-and-swap transition
	// pending -> delivered, conditioned on the stored status still being
	// pending and the order unexpired at write time. Exactly one concurrent
	// caller succeeds; losers get ErrStatusConflict.
	MarkDelivered(ctx context.Context, pickupKey string, now time.Time, info *models.CustomerInfo) (*models.Order, error)

	// MarkCancelled transitions pending -> cancelled for the owning merchant.
	MarkCancelled(ctx context.Context, id, merchantID primitive.ObjectID) (*models.Order, error)

	UpdateDeliveryData(ctx context.Context, id, merchantID primitive.ObjectID, data interface{}) (*models.Order, error)
	ListByMerchant(ctx context.Context, merchantID primitive.ObjectID, status models.OrderStatus, params *utils.PaginationParams) ([]*models.Order, int64, error)
}
