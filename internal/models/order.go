package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusExpired   OrderStatus = "expired"
	OrderStatusCancelled OrderStatus = "cancelled"
)

const (
	// PickupKeyMinLength bounds keys accepted on lookup.
	PickupKeyMinLength = 8

	// Order expiry window in days.
	OrderMinExpiryDays     = 1
	OrderMaxExpiryDays     = 365
	OrderDefaultExpiryDays = 30
)

// CustomerInfo is optional contact data captured when an order is created or
// picked up.
type CustomerInfo struct {
	Email string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
	Note  string `json:"note,omitempty" bson:"note,omitempty"`
}

// Order is a single-use fulfillment unit. The pickup key is a bearer secret:
// whoever holds it may redeem the order exactly once, transitioning the
// status from pending to delivered.
type Order struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderNumber  string             `json:"order_number" bson:"order_number" validate:"required"`
	ProductID    primitive.ObjectID `json:"product_id" bson:"product_id" validate:"required"`
	MerchantID   primitive.ObjectID `json:"merchant_id" bson:"merchant_id" validate:"required"`
	PickupKey    string             `json:"pickup_key,omitempty" bson:"pickup_key" validate:"required,min=8"`
	Quantity     int                `json:"quantity" bson:"quantity" validate:"required,min=1"`
	TotalAmount  float64            `json:"total_amount" bson:"total_amount" validate:"min=0"`
	Status       OrderStatus        `json:"status" bson:"status"`
	DeliveryData interface{}        `json:"delivery_data,omitempty" bson:"delivery_data,omitempty"`
	CustomerInfo *CustomerInfo      `json:"customer_info,omitempty" bson:"customer_info,omitempty"`
	PickedUpAt   *time.Time         `json:"picked_up_at,omitempty" bson:"picked_up_at,omitempty"`
	ExpiresAt    time.Time          `json:"expires_at" bson:"expires_at" validate:"required"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsExpired reports whether the order is past its pickup window. Expiry is a
// read-time classification; no background job rewrites the stored status.
func (o *Order) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// EffectiveStatus folds read-time expiry into the stored status.
func (o *Order) EffectiveStatus(now time.Time) OrderStatus {
	if o.Status == OrderStatusPending && o.IsExpired(now) {
		return OrderStatusExpired
	}
	return o.Status
}
