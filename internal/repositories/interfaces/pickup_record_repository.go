package interfaces

import (
	"context"

	"gomarket/internal/models"
	"gomarket/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PickupRecordRepository interface {
	// Create appends a ledger entry. The store's unique index on
	// (pickup_code_id, user_id) is the authoritative guard against double
	// redemption; a violation surfaces as ErrDuplicate.
	Create(ctx context.Context, record *models.PickupRecord) error

	// HasRedeemed is the advisory pre-check; the unique index remains the
	// source of truth under concurrency.
	HasRedeemed(ctx context.Context, codeID, userID primitive.ObjectID) (bool, error)

	ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error)
	ListByMerchant(ctx context.Context, merchantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error)
	CountByCode(ctx context.Context, codeID primitive.ObjectID) (int64, error)
}
