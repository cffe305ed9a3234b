package utils

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// maxAmountDigits bounds the textual length of an amount.
	maxAmountDigits = 40
	// maxAmountScale bounds the decimal exponent in either direction.
	maxAmountScale = 30
)

var (
	hundred = decimal.NewFromInt(100)
	// MaxAmount is the largest magnitude whose minor units fit in int64.
	MaxAmount = decimal.New(math.MaxInt64, -2)
)

// ParseAmount coerces a JSON number or numeric string into a decimal. It
// reports false for absent, null, empty, boolean or non-numeric input and for
// values whose minor units would not fit in int64.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, false
	}
	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, false
		}
		text = strings.TrimSpace(s)
	}
	if text == "" || len(text) > maxAmountDigits {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	// exponent first: comparing or rounding 1e50000000 is itself the cost
	if exp := d.Exponent(); exp > maxAmountScale || exp < -maxAmountScale {
		return decimal.Zero, false
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, false
	}
	return d, true
}

// ToMinorUnits returns round(amount × 100), halves rounded away from zero.
// amount must come from ParseAmount.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
