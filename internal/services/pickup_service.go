package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"
	"gomarket/internal/utils"
	"gomarket/internal/validators"
	"gomarket/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PickupService is the redemption engine. It owns the protocol that turns a
// presented code or pickup key into a committed, at-most-once state
// transition against the store.
type PickupService interface {
	// Code redemption (multi-use, per-user exclusion)
	VerifyPickupCode(ctx context.Context, code string) (*PickupCodeVerification, error)
	ConfirmPickupCode(ctx context.Context, code string, userID primitive.ObjectID) (*PickupCodeConfirmation, error)

	// Order key redemption (single-use bearer secret)
	VerifyPickupKey(ctx context.Context, pickupKey string) (*OrderVerification, error)
	ConfirmPickupKey(ctx context.Context, pickupKey string, info *models.CustomerInfo) (*OrderConfirmation, error)

	// Lookups around the redemption flow
	GetOrderStatus(ctx context.Context, orderNumber string) (*OrderStatusView, error)
	ListUserPickupRecords(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error)
}

type PickupCodeVerification struct {
	PickupCode *models.PickupCodeSummary `json:"pickup_code"`
	Product    *models.ProductSummary    `json:"product"`
	Merchant   *models.PublicProfile     `json:"merchant"`
}

type PickupCodeConfirmation struct {
	PickupCode   *models.PickupCodeSummary `json:"pickup_code"`
	Product      *models.ProductSummary    `json:"product"`
	Merchant     *models.PublicProfile     `json:"merchant"`
	DeliveryData interface{}               `json:"delivery_data,omitempty"`
	ConfirmedAt  time.Time                 `json:"confirmed_at"`
}

type OrderVerification struct {
	OrderNumber string                 `json:"order_number"`
	Product     *models.ProductSummary `json:"product"`
	Quantity    int                    `json:"quantity"`
	TotalAmount float64                `json:"total_amount"`
	ExpiresAt   time.Time              `json:"expires_at"`
}

type OrderConfirmation struct {
	OrderNumber  string                 `json:"order_number"`
	Product      *models.ProductSummary `json:"product"`
	DeliveryData interface{}            `json:"delivery_data,omitempty"`
	PickedUpAt   time.Time              `json:"picked_up_at"`
}

type OrderStatusView struct {
	OrderNumber string                 `json:"order_number"`
	Product     *models.ProductSummary `json:"product"`
	Status      models.OrderStatus     `json:"status"`
	Quantity    int                    `json:"quantity"`
	TotalAmount float64                `json:"total_amount"`
	CreatedAt   time.Time              `json:"created_at"`
	ExpiresAt   time.Time              `json:"expires_at"`
	PickedUpAt  *time.Time             `json:"picked_up_at,omitempty"`
}

type pickupService struct {
	codeRepo    interfaces.PickupCodeRepository
	recordRepo  interfaces.PickupRecordRepository
	orderRepo   interfaces.OrderRepository
	productRepo interfaces.ProductRepository
	userRepo    interfaces.UserRepository
	logger      *logger.Logger
}

func NewPickupService(
	codeRepo interfaces.PickupCodeRepository,
	recordRepo interfaces.PickupRecordRepository,
	orderRepo interfaces.OrderRepository,
	productRepo interfaces.ProductRepository,
	userRepo interfaces.UserRepository,
	logger *logger.Logger,
) PickupService {
	return &pickupService{
		codeRepo:    codeRepo,
		recordRepo:  recordRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// VerifyPickupCode checks a code without consuming anything. The state it
// reports is advisory; ConfirmPickupCode re-validates from scratch.
func (s *pickupService) VerifyPickupCode(ctx context.Context, code string) (*PickupCodeVerification, error) {
	pickupCode, product, merchant, err := s.resolveCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return &PickupCodeVerification{
		PickupCode: pickupCode.Summary(),
		Product:    product.Summary(),
		Merchant:   merchant.Public(),
	}, nil
}

// ConfirmPickupCode commits one redemption for the given user. The commit
// order is: conditional increment first, ledger insert second. The increment
// can only succeed while quota remains, so the ledger can never grow past the
// limit; a ledger insert that loses the per-user uniqueness race undoes its
// increment before reporting ErrAlreadyRedeemed.
func (s *pickupService) ConfirmPickupCode(ctx context.Context, code string, userID primitive.ObjectID) (*PickupCodeConfirmation, error) {
	pickupCode, product, merchant, err := s.resolveCode(ctx, code)
	if err != nil {
		return nil, err
	}

	// Advisory pre-check; the unique index remains the authority.
	redeemed, err := s.recordRepo.HasRedeemed(ctx, pickupCode.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check redemption history: %w", err)
	}
	if redeemed {
		return nil, ErrAlreadyRedeemed
	}

	updated, err := s.codeRepo.IncrementUsage(ctx, pickupCode.ID)
	if err != nil {
		if errors.Is(err, interfaces.ErrQuotaExceeded) {
			s.logger.LogRedemption(pickupCode.ID, userID, "quota_exhausted")
			return nil, ErrQuotaExhausted
		}
		return nil, fmt.Errorf("failed to commit redemption: %w", err)
	}

	record := &models.PickupRecord{
		PickupCodeID: pickupCode.ID,
		UserID:       userID,
		ProductID:    pickupCode.ProductID,
		MerchantID:   pickupCode.MerchantID,
		Status:       models.PickupRecordStatusConfirmed,
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		// Undo the increment so the counter keeps matching the ledger.
		if derr := s.codeRepo.DecrementUsage(ctx, pickupCode.ID); derr != nil {
			s.logger.WithError(derr).WithField("pickup_code_id", pickupCode.ID.Hex()).
				Error("Failed to compensate usage counter after ledger conflict")
		}
		if errors.Is(err, interfaces.ErrDuplicate) {
			s.logger.LogRedemption(pickupCode.ID, userID, "already_redeemed")
			return nil, ErrAlreadyRedeemed
		}
		return nil, fmt.Errorf("failed to record redemption: %w", err)
	}

	// Sales bookkeeping is best-effort; the redemption already committed.
	if err := s.productRepo.IncrementSales(ctx, pickupCode.ProductID, 1); err != nil {
		s.logger.WithError(err).WithField("product_id", pickupCode.ProductID.Hex()).
			Warn("Failed to increment product sales")
	}

	s.logger.LogRedemption(pickupCode.ID, userID, "confirmed")

	return &PickupCodeConfirmation{
		PickupCode:   updated.Summary(),
		Product:      product.Summary(),
		Merchant:     merchant.Public(),
		DeliveryData: product.DeliveryData,
		ConfirmedAt:  time.Now(),
	}, nil
}

func (s *pickupService) VerifyPickupKey(ctx context.Context, pickupKey string) (*OrderVerification, error) {
	if !validators.IsValidPickupKey(pickupKey) {
		return nil, ErrInvalidFormat
	}

	order, err := s.orderRepo.GetPendingByKey(ctx, pickupKey, time.Now())
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to verify pickup key: %w", err)
	}

	product, err := s.productRepo.GetByID(ctx, order.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order product: %w", err)
	}

	return &OrderVerification{
		OrderNumber: order.OrderNumber,
		Product:     product.Summary(),
		Quantity:    order.Quantity,
		TotalAmount: order.TotalAmount,
		ExpiresAt:   order.ExpiresAt,
	}, nil
}

// ConfirmPickupKey consumes a pickup key. The pending -> delivered transition
// is a compare-and-swap in the store, so among any number of concurrent holders
// exactly one receives the payload; the rest see the same rejection as an
// unknown key.
func (s *pickupService) ConfirmPickupKey(ctx context.Context, pickupKey string, info *models.CustomerInfo) (*OrderConfirmation, error) {
	if !validators.IsValidPickupKey(pickupKey) {
		return nil, ErrInvalidFormat
	}

	now := time.Now()
	order, err := s.orderRepo.MarkDelivered(ctx, pickupKey, now, info)
	if err != nil {
		if errors.Is(err, interfaces.ErrStatusConflict) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to confirm pickup key: %w", err)
	}

	if err := s.productRepo.IncrementSales(ctx, order.ProductID, order.Quantity); err != nil {
		s.logger.WithError(err).WithField("product_id", order.ProductID.Hex()).
			Warn("Failed to increment product sales")
	}

	// The key is consumed once MarkDelivered succeeds; a product lookup
	// failure past this point must not withhold the payload, since a retry
	// would only see a delivered order.
	var productSummary *models.ProductSummary
	if product, err := s.productRepo.GetByID(ctx, order.ProductID); err != nil {
		s.logger.WithError(err).WithField("product_id", order.ProductID.Hex()).
			Warn("Failed to load product for delivered order")
	} else {
		productSummary = product.Summary()
	}

	pickedUpAt := now
	if order.PickedUpAt != nil {
		pickedUpAt = *order.PickedUpAt
	}

	s.logger.WithFields(map[string]interface{}{
		"order_number": order.OrderNumber,
		"type":         "order_pickup",
	}).Info("Order picked up")

	return &OrderConfirmation{
		OrderNumber:  order.OrderNumber,
		Product:      productSummary,
		DeliveryData: order.DeliveryData,
		PickedUpAt:   pickedUpAt,
	}, nil
}

// GetOrderStatus is the public tracking view. It never exposes the pickup key
// or the delivery payload, and it folds read-time expiry into the status.
func (s *pickupService) GetOrderStatus(ctx context.Context, orderNumber string) (*OrderStatusView, error) {
	order, err := s.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order status: %w", err)
	}

	product, err := s.productRepo.GetByID(ctx, order.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order product: %w", err)
	}

	return &OrderStatusView{
		OrderNumber: order.OrderNumber,
		Product:     product.Summary(),
		Status:      order.EffectiveStatus(time.Now()),
		Quantity:    order.Quantity,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		ExpiresAt:   order.ExpiresAt,
		PickedUpAt:  order.PickedUpAt,
	}, nil
}

func (s *pickupService) ListUserPickupRecords(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error) {
	return s.recordRepo.ListByUser(ctx, userID, params)
}

// resolveCode runs the shared validation ladder for verify and confirm:
// shape, existence, expiry, quota. Every confirm re-runs it because the state
// may have moved since any earlier verify.
func (s *pickupService) resolveCode(ctx context.Context, code string) (*models.PickupCode, *models.Product, *models.User, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !validators.IsValidPickupCode(code) {
		return nil, nil, nil, ErrInvalidFormat
	}

	pickupCode, err := s.codeRepo.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil, nil, ErrNotFound
		}
		return nil, nil, nil, fmt.Errorf("failed to resolve pickup code: %w", err)
	}

	now := time.Now()
	if pickupCode.IsExpired(now) {
		return nil, nil, nil, ErrExpired
	}
	if pickupCode.IsExhausted() {
		return nil, nil, nil, ErrQuotaExhausted
	}

	product, err := s.productRepo.GetByID(ctx, pickupCode.ProductID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load code product: %w", err)
	}

	merchant, err := s.userRepo.GetByID(ctx, pickupCode.MerchantID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load code merchant: %w", err)
	}

	return pickupCode, product, merchant, nil
}
