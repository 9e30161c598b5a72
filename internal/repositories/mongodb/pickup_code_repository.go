package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type pickupCodeRepository struct {
	collection *mongo.Collection
}

func NewPickupCodeRepository(db *mongo.Database) interfaces.PickupCodeRepository {
	return &pickupCodeRepository{
		collection: db.Collection("pickup_codes"),
	}
}

func (r *pickupCodeRepository) Create(ctx context.Context, code *models.PickupCode) error {
	code.ID = primitive.NewObjectID()
	code.CreatedAt = time.Now()
	code.UpdatedAt = time.Now()
	code.Code = strings.ToUpper(code.Code)

	_, err := r.collection.InsertOne(ctx, code)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create pickup code: %w", err)
	}

	return nil
}

func (r *pickupCodeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PickupCode, error) {
	var code models.PickupCode
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}).Decode(&code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pickup code: %w", err)
	}

	return &code, nil
}

// GetActiveByCode resolves a presented token. Disabled, deleted and unknown
// codes all come back as ErrNotFound so a caller cannot tell them apart.
func (r *pickupCodeRepository) GetActiveByCode(ctx context.Context, code string) (*models.PickupCode, error) {
	filter := bson.M{
		"code":       strings.ToUpper(code),
		"is_active":  true,
		"is_deleted": bson.M{"$ne": true},
	}

	var pickupCode models.PickupCode
	err := r.collection.FindOne(ctx, filter).Decode(&pickupCode)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pickup code by code: %w", err)
	}

	return &pickupCode, nil
}

func (r *pickupCodeRepository) GetByIDForMerchant(ctx context.Context, id, merchantID primitive.ObjectID) (*models.PickupCode, error) {
	filter := bson.M{
		"_id":         id,
		"merchant_id": merchantID,
		"is_deleted":  bson.M{"$ne": true},
	}

	var code models.PickupCode
	err := r.collection.FindOne(ctx, filter).Decode(&code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pickup code for merchant: %w", err)
	}

	return &code, nil
}

func (r *pickupCodeRepository) ListByProduct(ctx context.Context, productID, merchantID primitive.ObjectID) ([]*models.PickupCode, error) {
	filter := bson.M{
		"product_id":  productID,
		"merchant_id": merchantID,
		"is_deleted":  bson.M{"$ne": true},
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pickup codes: %w", err)
	}
	defer cursor.Close(ctx)

	var codes []*models.PickupCode
	for cursor.Next(ctx) {
		var code models.PickupCode
		if err := cursor.Decode(&code); err != nil {
			return nil, fmt.Errorf("failed to decode pickup code: %w", err)
		}
		codes = append(codes, &code)
	}

	return codes, nil
}

func (r *pickupCodeRepository) CountByProduct(ctx context.Context, productID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"product_id": productID,
		"is_deleted": bson.M{"$ne": true},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count pickup codes: %w", err)
	}

	return count, nil
}

func (r *pickupCodeRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update pickup code: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *pickupCodeRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{
			"is_deleted": true,
			"deleted_at": now,
			"updated_at": now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to delete pickup code: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

// IncrementUsage is the single load-bearing write of the redemption path: the
// quota check and the increment execute as one FindOneAndUpdate against the
// stored counter, so concurrent redeemers can never push used_count past
// usage_limit.
func (r *pickupCodeRepository) IncrementUsage(ctx context.Context, id primitive.ObjectID) (*models.PickupCode, error) {
	filter := bson.M{
		"_id": id,
		"$or": []bson.M{
			{"usage_limit": nil},
			{"$expr": bson.M{"$lt": bson.A{"$used_count", "$usage_limit"}}},
		},
	}
	update := bson.M{
		"$inc": bson.M{"used_count": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var code models.PickupCode
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrQuotaExceeded
		}
		return nil, fmt.Errorf("failed to increment pickup code usage: %w", err)
	}

	return &code, nil
}

func (r *pickupCodeRepository) DecrementUsage(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "used_count": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"used_count": -1},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to decrement pickup code usage: %w", err)
	}

	return nil
}
