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

type pickupRecordRepository struct {
	collection *mongo.Collection
}

func NewPickupRecordRepository(db *mongo.Database) interfaces.PickupRecordRepository {
	return &pickupRecordRepository{
		collection: db.Collection("pickup_records"),
	}
}

// Create appends a ledger entry. The unique index on
// (pickup_code_id, user_id) decides races: of two concurrent inserts for the
// same pair exactly one lands, the other surfaces as ErrDuplicate.
func (r *pickupRecordRepository) Create(ctx context.Context, record *models.PickupRecord) error {
	record.ID = primitive.NewObjectID()
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create pickup record: %w", err)
	}

	return nil
}

func (r *pickupRecordRepository) HasRedeemed(ctx context.Context, codeID, userID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"pickup_code_id": codeID,
		"user_id":        userID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check pickup record: %w", err)
	}

	return count > 0, nil
}

func (r *pickupRecordRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error) {
	return r.findWithFilter(ctx, bson.M{"user_id": userID}, params)
}

func (r *pickupRecordRepository) ListByMerchant(ctx context.Context, merchantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error) {
	return r.findWithFilter(ctx, bson.M{"merchant_id": merchantID}, params)
}

func (r *pickupRecordRepository) CountByCode(ctx context.Context, codeID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"pickup_code_id": codeID})
	if err != nil {
		return 0, fmt.Errorf("failed to count pickup records: %w", err)
	}

	return count, nil
}

func (r *pickupRecordRepository) findWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count pickup records: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find pickup records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*models.PickupRecord
	for cursor.Next(ctx) {
		var record models.PickupRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, 0, fmt.Errorf("failed to decode pickup record: %w", err)
		}
		records = append(records, &record)
	}

	return records, total, nil
}
