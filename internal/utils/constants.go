package utils

import "time"

// Application Constants
const (
	AppName    = "GoMarket"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128

	// Rate limiting for pickup verification and confirmation
	PickupRateLimit  = 5
	PickupRateWindow = time.Minute

	// Response status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Common error messages
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
	ErrTooManyAttempts  = "too many attempts, try again later"
)
