package mongodb

import (
	"context"
	"fmt"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type statsRepository struct {
	products *mongo.Collection
	codes    *mongo.Collection
	records  *mongo.Collection
	orders   *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) interfaces.StatsRepository {
	return &statsRepository{
		products: db.Collection("products"),
		codes:    db.Collection("pickup_codes"),
		records:  db.Collection("pickup_records"),
		orders:   db.Collection("orders"),
	}
}

func (r *statsRepository) GetMerchantStats(ctx context.Context, merchantID primitive.ObjectID) (*models.MerchantStats, error) {
	stats := &models.MerchantStats{
		OrdersByStatus: make(map[string]int64),
	}

	var err error
	stats.TotalProducts, err = r.products.CountDocuments(ctx, bson.M{"merchant_id": merchantID})
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	stats.ActiveProducts, err = r.products.CountDocuments(ctx, bson.M{
		"merchant_id": merchantID,
		"is_active":   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count active products: %w", err)
	}

	stats.ActiveCodes, err = r.codes.CountDocuments(ctx, bson.M{
		"merchant_id": merchantID,
		"is_active":   true,
		"is_deleted":  bson.M{"$ne": true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count active codes: %w", err)
	}

	stats.TotalRedemptions, err = r.records.CountDocuments(ctx, bson.M{"merchant_id": merchantID})
	if err != nil {
		return nil, fmt.Errorf("failed to count redemptions: %w", err)
	}

	pipeline := []bson.M{
		{"$match": bson.M{"merchant_id": merchantID}},
		{"$group": bson.M{
			"_id":     "$status",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total_amount"},
		}},
	}

	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Status  string  `bson:"_id"`
		Count   int64   `bson:"count"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode order stats: %w", err)
	}

	for _, g := range groups {
		stats.OrdersByStatus[g.Status] = g.Count
		if g.Status == string(models.OrderStatusDelivered) {
			stats.DeliveredRevenue = g.Revenue
		}
	}

	return stats, nil
}
