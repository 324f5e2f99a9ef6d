// utils/validation.go
package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseAmountCents converts a decimal currency string ("12.50") to integer
// cents. Balances and payments are stored as integer cents only. Non-finite
// values and values whose cents overflow int64 are rejected.
func ParseAmountCents(s string) (int64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("amount must be a number")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errors.New("amount must be a number")
	}
	cents := math.Round(amount * 100)
	if cents >= math.MaxInt64 || cents < math.MinInt64 {
		return 0, errors.New("amount is out of range")
	}
	return int64(cents), nil
}

// TrimToNil trims a free-text field and maps the empty string to NULL.
func TrimToNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
