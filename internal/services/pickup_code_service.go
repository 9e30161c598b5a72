package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"
	"gomarket/internal/utils"
	"gomarket/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PickupCodeService is the merchant-facing issuance surface for redeemable
// codes. Redemption lives in PickupService; this side only mints and manages.
type PickupCodeService interface {
	IssueCode(ctx context.Context, merchantID, productID primitive.ObjectID, req *IssuePickupCodeRequest) (*models.PickupCode, error)
	ListCodes(ctx context.Context, merchantID, productID primitive.ObjectID) ([]*models.PickupCode, error)
	UpdateCode(ctx context.Context, merchantID, codeID primitive.ObjectID, req *UpdatePickupCodeRequest) (*models.PickupCode, error)
	DeleteCode(ctx context.Context, merchantID, codeID primitive.ObjectID) error
}

// IssuePickupCodeRequest is a tagged request: "usage" codes carry a usage
// limit, "time" codes carry an expiry, and a code may carry both.
type IssuePickupCodeRequest struct {
	Type       string     `json:"type" binding:"required,oneof=usage time"`
	UsageLimit *int       `json:"usage_limit,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// UpdatePickupCodeRequest patches a code in place. Omitted fields are left
// untouched; a usage limit or expiry can be replaced but not removed, so a
// bounded code never silently becomes unlimited. Issue a fresh code for that.
type UpdatePickupCodeRequest struct {
	IsActive   *bool      `json:"is_active,omitempty"`
	UsageLimit *int       `json:"usage_limit,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type pickupCodeService struct {
	codeRepo    interfaces.PickupCodeRepository
	productRepo interfaces.ProductRepository
	logger      *logger.Logger
}

func NewPickupCodeService(
	codeRepo interfaces.PickupCodeRepository,
	productRepo interfaces.ProductRepository,
	logger *logger.Logger,
) PickupCodeService {
	return &pickupCodeService{
		codeRepo:    codeRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// IssueCode mints a new code for a product the merchant owns. Products are
// capped at MaxCodesPerProduct live codes; soft-deleted codes do not count.
func (s *pickupCodeService) IssueCode(ctx context.Context, merchantID, productID primitive.ObjectID, req *IssuePickupCodeRequest) (*models.PickupCode, error) {
	if err := s.validateIssueRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.GetByIDForMerchant(ctx, productID, merchantID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	count, err := s.codeRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to count product codes: %w", err)
	}
	if count >= models.MaxCodesPerProduct {
		return nil, ErrCodeLimitReached
	}

	pickupCode := &models.PickupCode{
		ProductID:  productID,
		MerchantID: merchantID,
		IsActive:   true,
		UsageLimit: req.UsageLimit,
		ExpiresAt:  req.ExpiresAt,
	}

	// Codes are globally unique; retry on the rare collision.
	for attempt := 0; attempt < 5; attempt++ {
		pickupCode.Code = utils.GeneratePickupCode()

		err := s.codeRepo.Create(ctx, pickupCode)
		if err == nil {
			s.logger.WithFields(map[string]interface{}{
				"pickup_code_id": pickupCode.ID.Hex(),
				"product_id":     productID.Hex(),
				"merchant_id":    merchantID.Hex(),
			}).Info("Pickup code issued")
			return pickupCode, nil
		}
		if !errors.Is(err, interfaces.ErrDuplicate) {
			return nil, fmt.Errorf("failed to create pickup code: %w", err)
		}
	}

	return nil, fmt.Errorf("failed to create pickup code: code space collision")
}

func (s *pickupCodeService) ListCodes(ctx context.Context, merchantID, productID primitive.ObjectID) ([]*models.PickupCode, error) {
	if _, err := s.productRepo.GetByIDForMerchant(ctx, productID, merchantID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return s.codeRepo.ListByProduct(ctx, productID, merchantID)
}

func (s *pickupCodeService) UpdateCode(ctx context.Context, merchantID, codeID primitive.ObjectID, req *UpdatePickupCodeRequest) (*models.PickupCode, error) {
	pickupCode, err := s.codeRepo.GetByIDForMerchant(ctx, codeID, merchantID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load pickup code: %w", err)
	}

	if req.UsageLimit != nil && *req.UsageLimit < pickupCode.UsedCount {
		return nil, validationError("usage_limit cannot be below the current used count")
	}

	updates := map[string]interface{}{}
	if req.IsActive != nil {
		pickupCode.IsActive = *req.IsActive
		updates["is_active"] = *req.IsActive
	}
	if req.UsageLimit != nil {
		pickupCode.UsageLimit = req.UsageLimit
		updates["usage_limit"] = *req.UsageLimit
	}
	if req.ExpiresAt != nil {
		pickupCode.ExpiresAt = req.ExpiresAt
		updates["expires_at"] = *req.ExpiresAt
	}

	if len(updates) > 0 {
		if err := s.codeRepo.Update(ctx, codeID, updates); err != nil {
			return nil, fmt.Errorf("failed to update pickup code: %w", err)
		}
	}
	return pickupCode, nil
}

// DeleteCode soft-deletes: the code stops resolving immediately but its
// redemption history stays queryable, and the slot it held frees up.
func (s *pickupCodeService) DeleteCode(ctx context.Context, merchantID, codeID primitive.ObjectID) error {
	if _, err := s.codeRepo.GetByIDForMerchant(ctx, codeID, merchantID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load pickup code: %w", err)
	}

	if err := s.codeRepo.SoftDelete(ctx, codeID); err != nil {
		return fmt.Errorf("failed to delete pickup code: %w", err)
	}

	s.logger.WithField("pickup_code_id", codeID.Hex()).Info("Pickup code deleted")
	return nil
}

func (s *pickupCodeService) validateIssueRequest(req *IssuePickupCodeRequest) error {
	switch req.Type {
	case "usage":
		if req.UsageLimit == nil || *req.UsageLimit < 1 {
			return validationError("usage codes require usage_limit of at least 1")
		}
	case "time":
		if req.ExpiresAt == nil {
			return validationError("time codes require expires_at")
		}
	default:
		return validationError("type must be usage or time")
	}

	if req.UsageLimit != nil && *req.UsageLimit < 1 {
		return validationError("usage_limit must be at least 1")
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now()) {
		return validationError("expires_at must be in the future")
	}
	return nil
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
