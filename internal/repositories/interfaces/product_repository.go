package interfaces

import (
	"context"

	"gomarket/internal/models"
	"gomarket/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetByIDForMerchant(ctx context.Context, id, merchantID primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	ListByMerchant(ctx context.Context, merchantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Product, int64, error)

	// IncrementSales bumps the sales counter. Best-effort bookkeeping; the
	// redemption outcome does not depend on it.
	IncrementSales(ctx context.Context, id primitive.ObjectID, quantity int) error
}
