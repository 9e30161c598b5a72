package validators

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("pickup_code", validatePickupCodeTag)
	validate.RegisterValidation("pickup_key", validatePickupKeyTag)
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("future_date", validateFutureDate)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "pickup_code":
		return "Invalid pickup code format"
	case "pickup_key":
		return "Invalid pickup key format"
	case "strong_password":
		return "Password must contain uppercase, lowercase, number, and special character"
	case "future_date":
		return "Date must be in the future"
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	_, err := primitive.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

func validatePickupCodeTag(fl validator.FieldLevel) bool {
	return IsValidPickupCode(fl.Field().String())
}

func validatePickupKeyTag(fl validator.FieldLevel) bool {
	return IsValidPickupKey(fl.Field().String())
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}

func validateFutureDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now())
}

var (
	pickupCodePattern = regexp.MustCompile(`^[A-Z0-9]{6,20}$`)
	pickupKeyPattern  = regexp.MustCompile(`^[A-Za-z0-9]{8,64}$`)
)

// IsValidPickupCode reports whether a presented token has the shape of a
// pickup code after normalization. Shape only; existence is the store's call.
func IsValidPickupCode(code string) bool {
	return pickupCodePattern.MatchString(code)
}

// IsValidPickupKey reports whether a presented secret has the shape of an
// order pickup key.
func IsValidPickupKey(key string) bool {
	return pickupKeyPattern.MatchString(key)
}
