package interfaces

import (
	"context"

	"gomarket/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PickupCodeRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, code *models.PickupCode) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PickupCode, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// SoftDelete marks the code deleted without removing it; ledger entries
	// keep referencing it for audit.
	SoftDelete(ctx context.Context, id primitive.ObjectID) error

	// Code operations
	GetActiveByCode(ctx context.Context, code string) (*models.PickupCode, error)
	GetByIDForMerchant(ctx context.Context, id, merchantID primitive.ObjectID) (*models.PickupCode, error)
	ListByProduct(ctx context.Context, productID, merchantID primitive.ObjectID) ([]*models.PickupCode, error)
	CountByProduct(ctx context.Context, productID primitive.ObjectID) (int64, error)

	// IncrementUsage atomically increments used_count by one, conditioned on
	// the counter still being below usage_limit (or the limit being unset).
	// The check and the increment are a single write to the store; callers
	// must never re-implement this as read-check-write. Returns the updated
	// code, or ErrQuotaExceeded when the quota was already consumed.
	IncrementUsage(ctx context.Context, id primitive.ObjectID) (*models.PickupCode, error)

	// DecrementUsage undoes one increment. Only the redemption engine calls
	// this, to compensate an increment whose ledger insert lost a race.
	DecrementUsage(ctx context.Context, id primitive.ObjectID) error
}
