package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PickupRecordStatus string

const (
	PickupRecordStatusPending   PickupRecordStatus = "pending"
	PickupRecordStatusConfirmed PickupRecordStatus = "confirmed"
	// completed and cancelled are reserved for follow-up workflow steps;
	// the redemption path only ever writes confirmed.
	PickupRecordStatusCompleted PickupRecordStatus = "completed"
	PickupRecordStatusCancelled PickupRecordStatus = "cancelled"
)

// PickupRecord is one entry in the append-only redemption ledger: user X
// consumed code Y. The (pickup_code_id, user_id) pair is unique, which is
// what prevents the same user redeeming a code twice.
type PickupRecord struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PickupCodeID primitive.ObjectID `json:"pickup_code_id" bson:"pickup_code_id" validate:"required"`
	UserID       primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	ProductID    primitive.ObjectID `json:"product_id" bson:"product_id" validate:"required"`
	MerchantID   primitive.ObjectID `json:"merchant_id" bson:"merchant_id" validate:"required"`
	Status       PickupRecordStatus `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}
