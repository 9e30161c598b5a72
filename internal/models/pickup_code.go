package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// PickupCodeLength is the number of characters minted for a new code.
	PickupCodeLength = 12

	// PickupCodeMinLength and PickupCodeMaxLength bound codes accepted on lookup.
	PickupCodeMinLength = 6
	PickupCodeMaxLength = 20

	// MaxCodesPerProduct caps the number of non-deleted codes a product may carry.
	MaxCodesPerProduct = 20
)

// PickupCode is a merchant-issued redeemable code. A code may be redeemed by
// many distinct customers up to UsageLimit; each customer at most once.
type PickupCode struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code       string             `json:"code" bson:"code" validate:"required,min=6,max=20"`
	ProductID  primitive.ObjectID `json:"product_id" bson:"product_id" validate:"required"`
	MerchantID primitive.ObjectID `json:"merchant_id" bson:"merchant_id" validate:"required"`
	IsActive   bool               `json:"is_active" bson:"is_active"`
	UsageLimit *int               `json:"usage_limit" bson:"usage_limit"`
	UsedCount  int                `json:"used_count" bson:"used_count"`
	ExpiresAt  *time.Time         `json:"expires_at" bson:"expires_at"`
	IsDeleted  bool               `json:"-" bson:"is_deleted"`
	DeletedAt  *time.Time         `json:"-" bson:"deleted_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsExpired reports whether the code is past its expiry at the given instant.
// A code without an expiry never expires.
func (p *PickupCode) IsExpired(now time.Time) bool {
	if p.ExpiresAt == nil {
		return false
	}
	return now.After(*p.ExpiresAt)
}

// IsExhausted reports whether the usage quota has been consumed.
// A code without a usage limit is never exhausted.
func (p *PickupCode) IsExhausted() bool {
	if p.UsageLimit == nil {
		return false
	}
	return p.UsedCount >= *p.UsageLimit
}

// IsAvailable reports whether the code can still be redeemed at the given
// instant. Computed on read, never persisted.
func (p *PickupCode) IsAvailable(now time.Time) bool {
	if !p.IsActive || p.IsDeleted {
		return false
	}
	if p.IsExpired(now) {
		return false
	}
	return !p.IsExhausted()
}

// PickupCodeSummary is the redacted view returned to customers during
// verification. It never carries ownership or lifecycle flags.
type PickupCodeSummary struct {
	ID         primitive.ObjectID `json:"id"`
	Code       string             `json:"code"`
	UsageLimit *int               `json:"usage_limit"`
	UsedCount  int                `json:"used_count"`
	ExpiresAt  *time.Time         `json:"expires_at"`
}

// Summary builds the customer-facing view of the code.
func (p *PickupCode) Summary() *PickupCodeSummary {
	return &PickupCodeSummary{
		ID:         p.ID,
		Code:       p.Code,
		UsageLimit: p.UsageLimit,
		UsedCount:  p.UsedCount,
		ExpiresAt:  p.ExpiresAt,
	}
}
