package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPickupCode(t *testing.T) {
	valid := []string{"ABC123", "ABCDEF123456", "A1B2C3D4E5F6G7H8I9J0"}
	for _, code := range valid {
		assert.True(t, IsValidPickupCode(code), "expected %q to be valid", code)
	}

	invalid := []string{"", "AB1", "abc123def456", "ABC-123", "A1B2C3D4E5F6G7H8I9J0X"}
	for _, code := range invalid {
		assert.False(t, IsValidPickupCode(code), "expected %q to be invalid", code)
	}
}

func TestIsValidPickupKey(t *testing.T) {
	assert.True(t, IsValidPickupKey("AABBCCDD"))
	assert.True(t, IsValidPickupKey("aabbccdd11223344aabbccdd11223344"))

	assert.False(t, IsValidPickupKey("short"))
	assert.False(t, IsValidPickupKey("has spaces here"))
}

func TestValidateStruct(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Code  string `validate:"required,pickup_code"`
	}

	errs := ValidateStruct(&form{Email: "merchant@example.com", Code: "ABC123DEF456"})
	assert.Empty(t, errs)

	errs = ValidateStruct(&form{Email: "not-an-email", Code: "bad"})
	assert.Len(t, errs, 2)
	assert.NotEmpty(t, errs.Error())
}
