package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"
	"gomarket/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) interfaces.OrderRepository {
	return &orderRepository{
		collection: db.Collection("orders"),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	order.OrderNumber = strings.ToUpper(order.OrderNumber)

	_, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"order_number": strings.ToUpper(orderNumber)}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order by number: %w", err)
	}

	return &order, nil
}

func (r *orderRepository) GetPendingByKey(ctx context.Context, pickupKey string, now time.Time) (*models.Order, error) {
	filter := bson.M{
		"pickup_key": pickupKey,
		"status":     models.OrderStatusPending,
		"expires_at": bson.M{"$gt": now},
	}

	var order models.Order
	err := r.collection.FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order by pickup key: %w", err)
	}

	return &order, nil
}

// MarkDelivered is the order counterpart of the conditional increment: the
// status check and the transition run as one FindOneAndUpdate, so a pickup
// key can only ever be consumed once no matter how many holders race.
func (r *orderRepository) MarkDelivered(ctx context.Context, pickupKey string, now time.Time, info *models.CustomerInfo) (*models.Order, error) {
	filter := bson.M{
		"pickup_key": pickupKey,
		"status":     models.OrderStatusPending,
		"expires_at": bson.M{"$gt": now},
	}

	set := bson.M{
		"status":       models.OrderStatusDelivered,
		"picked_up_at": now,
		"updated_at":   now,
	}
	if info != nil {
		set["customer_info"] = info
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrStatusConflict
		}
		return nil, fmt.Errorf("failed to mark order delivered: %w", err)
	}

	return &order, nil
}

func (r *orderRepository) MarkCancelled(ctx context.Context, id, merchantID primitive.ObjectID) (*models.Order, error) {
	now := time.Now()
	filter := bson.M{
		"_id":         id,
		"merchant_id": merchantID,
		"status":      models.OrderStatusPending,
	}
	update := bson.M{"$set": bson.M{
		"status":     models.OrderStatusCancelled,
		"updated_at": now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrStatusConflict
		}
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	return &order, nil
}

func (r *orderRepository) UpdateDeliveryData(ctx context.Context, id, merchantID primitive.ObjectID, data interface{}) (*models.Order, error) {
	filter := bson.M{
		"_id":         id,
		"merchant_id": merchantID,
		"status":      models.OrderStatusPending,
	}
	update := bson.M{"$set": bson.M{
		"delivery_data": data,
		"updated_at":    time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update delivery data: %w", err)
	}

	return &order, nil
}

func (r *orderRepository) ListByMerchant(ctx context.Context, merchantID primitive.ObjectID, status models.OrderStatus, params *utils.PaginationParams) ([]*models.Order, int64, error) {
	filter := bson.M{"merchant_id": merchantID}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	for cursor.Next(ctx) {
		var order models.Order
		if err := cursor.Decode(&order); err != nil {
			return nil, 0, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, &order)
	}

	return orders, total, nil
}
