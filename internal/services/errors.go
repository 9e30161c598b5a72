package services

import "errors"

// Every rejection the redemption and issuance paths can produce. Handlers
// translate these into HTTP status codes; a failed attempt just tells the
// caller why.
var (
	// ErrInvalidFormat means the presented code or key does not even have a
	// plausible shape.
	ErrInvalidFormat = errors.New("code format is invalid")

	// ErrNotFound covers unknown, disabled and soft-deleted credentials
	// alike; the caller cannot tell which.
	ErrNotFound = errors.New("code is invalid or does not exist")

	// ErrExpired means the credential resolved but its window has passed.
	ErrExpired = errors.New("code has expired")

	// ErrQuotaExhausted means the code's usage limit has been fully consumed.
	ErrQuotaExhausted = errors.New("code usage limit reached")

	// ErrAlreadyRedeemed means this user has already consumed this code.
	ErrAlreadyRedeemed = errors.New("code already redeemed by this user")

	// ErrCodeLimitReached means the product already carries the maximum
	// number of non-deleted codes.
	ErrCodeLimitReached = errors.New("product pickup code limit reached")

	// ErrInsufficientStock means an order asked for more units than the
	// product has.
	ErrInsufficientStock = errors.New("insufficient product stock")

	// ErrValidation wraps request-shape problems; the wrapped message says
	// which field.
	ErrValidation = errors.New("invalid request")

	ErrEmailTaken      = errors.New("email is already registered")
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrInvalidLogin    = errors.New("invalid email or password")
	ErrAccountDisabled = errors.New("account is disabled")
)
