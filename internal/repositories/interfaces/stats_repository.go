package interfaces

import (
	"context"

	"gomarket/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StatsRepository interface {
	// GetMerchantStats aggregates counts and revenue across the merchant's
	// products, codes, ledger entries and orders.
	GetMerchantStats(ctx context.Context, merchantID primitive.ObjectID) (*models.MerchantStats, error)
}
