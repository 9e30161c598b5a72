package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	pickupCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	alphanumeric       = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func GenerateRandomString(length int) string {
	return generateRandom(length, alphanumeric)
}

// GeneratePickupCode mints a 12 character code from the 36-symbol uppercase
// alphabet. Uniqueness is enforced by the store; callers retry on collision.
func GeneratePickupCode() string {
	return generateRandom(12, pickupCodeAlphabet)
}

// GeneratePickupKey mints the bearer secret for an order: 16 random bytes,
// hex encoded and uppercased.
func GeneratePickupKey() string {
	b := make([]byte, 16)
	rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}

// GenerateOrderNumber builds a human-readable order identifier from a base36
// timestamp plus a short random suffix, e.g. AP1M2X3K4ZQ9F7.
func GenerateOrderNumber() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := generateRandom(4, pickupCodeAlphabet)
	return "AP" + timestamp + suffix
}

func generateRandom(length int, charset string) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(charset)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = charset[num.Int64()]
	}

	return string(result)
}
