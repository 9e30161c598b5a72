package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a virtual good fulfilled through pickup codes or orders. The
// payload handed out on redemption lives in DeliveryData; DeliveryType
// describes what kind of payload it is (link, account, text, file).
type Product struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" validate:"required,max=100"`
	Description  string             `json:"description" bson:"description" validate:"required,max=1000"`
	Category     string             `json:"category" bson:"category"`
	DeliveryType string             `json:"delivery_type" bson:"delivery_type"`
	Price        float64            `json:"price" bson:"price" validate:"min=0"`
	Stock        int                `json:"stock" bson:"stock" validate:"min=0"`
	MerchantID   primitive.ObjectID `json:"merchant_id" bson:"merchant_id" validate:"required"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
	Tags         []string           `json:"tags" bson:"tags"`
	Sales        int                `json:"sales" bson:"sales"`
	DeliveryData interface{}        `json:"delivery_data,omitempty" bson:"delivery_data,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProductSummary is the view exposed during code and key verification.
type ProductSummary struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Price        float64            `json:"price"`
	DeliveryType string             `json:"delivery_type,omitempty"`
}

func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		DeliveryType: p.DeliveryType,
	}
}
