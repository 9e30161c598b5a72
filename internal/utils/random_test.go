package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePickupCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GeneratePickupCode()
		assert.Len(t, code, 12)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(pickupCodeAlphabet, r),
				"unexpected character %q in code %s", r, code)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 90, "codes should be effectively unique")
}

func TestGeneratePickupKey(t *testing.T) {
	key := GeneratePickupKey()
	assert.Len(t, key, 32)
	assert.Equal(t, strings.ToUpper(key), key)

	assert.NotEqual(t, key, GeneratePickupKey())
}

func TestGenerateOrderNumber(t *testing.T) {
	number := GenerateOrderNumber()
	assert.True(t, strings.HasPrefix(number, "AP"))
	assert.Greater(t, len(number), 8)
}
