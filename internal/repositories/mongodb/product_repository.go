package mongodb

import (
	"context"
	"fmt"
	"time"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"
	"gomarket/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CacheService is the slice of the cache the repositories need. Satisfied by
// *cache.RedisCache.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const productCacheTTL = 30 * time.Minute

type productRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewProductRepository(db *mongo.Database, cache CacheService) interfaces.ProductRepository {
	return &productRepository{
		collection: db.Collection("products"),
		cache:      cache,
	}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if product := r.getFromCache(ctx, id.Hex()); product != nil {
		return product, nil
	}

	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	r.cacheProduct(ctx, &product)

	return &product, nil
}

func (r *productRepository) GetByIDForMerchant(ctx context.Context, id, merchantID primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "merchant_id": merchantID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product for merchant: %w", err)
	}

	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateCache(ctx, id.Hex())

	return nil
}

func (r *productRepository) ListByMerchant(ctx context.Context, merchantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Product, int64, error) {
	filter := bson.M{"merchant_id": merchantID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, 0, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, &product)
	}

	return products, total, nil
}

func (r *productRepository) IncrementSales(ctx context.Context, id primitive.ObjectID, quantity int) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"sales": quantity},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to increment product sales: %w", err)
	}

	r.invalidateCache(ctx, id.Hex())

	return nil
}

func (r *productRepository) cacheProduct(ctx context.Context, product *models.Product) {
	if r.cache != nil && product.IsActive {
		r.cache.Set(ctx, "product:"+product.ID.Hex(), product, productCacheTTL)
	}
}

func (r *productRepository) getFromCache(ctx context.Context, productID string) *models.Product {
	if r.cache == nil {
		return nil
	}

	var product models.Product
	if err := r.cache.Get(ctx, "product:"+productID, &product); err != nil {
		return nil
	}

	return &product
}

func (r *productRepository) invalidateCache(ctx context.Context, productID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, "product:"+productID)
	}
}
