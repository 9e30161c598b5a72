package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleMerchant UserRole = "merchant"
	UserRoleCustomer UserRole = "customer"
)

// User is an account in the marketplace. Merchants issue codes and orders;
// customers redeem them. The redemption core only ever needs the identity and
// role, everything else is profile data.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username" validate:"required,min=3,max=30"`
	Email        string             `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Role         UserRole           `json:"role" bson:"role"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
	LastLoginAt  *time.Time         `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// PublicProfile is the redacted view attached to verification responses so a
// customer can see who issued a code without leaking account data.
type PublicProfile struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
}

func (u *User) Public() *PublicProfile {
	return &PublicProfile{ID: u.ID, Username: u.Username}
}
