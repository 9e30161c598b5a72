package services

import (
	"context"
	"fmt"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"
	"gomarket/internal/utils"
	"gomarket/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StatsService interface {
	GetMerchantStats(ctx context.Context, merchantID primitive.ObjectID) (*models.MerchantStats, error)
	ListMerchantRedemptions(ctx context.Context, merchantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error)
}

type statsService struct {
	statsRepo  interfaces.StatsRepository
	recordRepo interfaces.PickupRecordRepository
	logger     *logger.Logger
}

func NewStatsService(
	statsRepo interfaces.StatsRepository,
	recordRepo interfaces.PickupRecordRepository,
	logger *logger.Logger,
) StatsService {
	return &statsService{
		statsRepo:  statsRepo,
		recordRepo: recordRepo,
		logger:     logger,
	}
}

func (s *statsService) GetMerchantStats(ctx context.Context, merchantID primitive.ObjectID) (*models.MerchantStats, error) {
	stats, err := s.statsRepo.GetMerchantStats(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant stats: %w", err)
	}
	return stats, nil
}

func (s *statsService) ListMerchantRedemptions(ctx context.Context, merchantID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error) {
	return s.recordRepo.ListByMerchant(ctx, merchantID, params)
}
