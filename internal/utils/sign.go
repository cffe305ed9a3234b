package utils

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// SignFields are the cashier request fields covered by GT-Authentication,
// already rendered as strings. Empty fields contribute nothing.
type SignFields struct {
	MerchantID     string
	ApplicationKey string
	Timestamp      string
	Intent         string
	CID            string
	OrderID        string
}

// GenerateSign concatenates merchant_id, application_key, timestamp, intent,
// cid and order_id followed by the secret and returns the lowercase hex
// SHA-384 of the result. The order is fixed by the gateway.
func GenerateSign(f SignFields, secret string) string {
	var sb strings.Builder
	sb.WriteString(f.MerchantID)
	sb.WriteString(f.ApplicationKey)
	sb.WriteString(f.Timestamp)
	sb.WriteString(f.Intent)
	sb.WriteString(f.CID)
	sb.WriteString(f.OrderID)
	sb.WriteString(secret)

	hash := sha512.Sum384([]byte(sb.String()))
	return hex.EncodeToString(hash[:])
}
