package dto

import (
	"encoding/json"

	"praxis-cashier-api/internal/utils"
)

// InitPaymentReq is the body of POST /api/praxis/init. Amount is kept raw so
// that numbers and numeric strings are both accepted.
type InitPaymentReq struct {
	Amount   json.RawMessage `json:"amount"`
	Currency string          `json:"currency"`
	CID      string          `json:"cid"`
	Locale   string          `json:"locale"`
}

// CashierRequest is the JSON body sent to the Praxis cashier endpoint.
type CashierRequest struct {
	MerchantID      string `json:"merchant_id"`
	ApplicationKey  string `json:"application_key"`
	Intent          string `json:"intent"`
	Currency        string `json:"currency"`
	Amount          int64  `json:"amount"`
	CID             string `json:"cid"`
	Locale          string `json:"locale"`
	NotificationURL string `json:"notification_url"`
	ReturnURL       string `json:"return_url"`
	OrderID         string `json:"order_id"`
	Version         string `json:"version"`
	Timestamp       int64  `json:"timestamp"`
}

// CashierResponse holds the fields of the gateway answer this service reads.
type CashierResponse struct {
	Status      utils.StringOrNumber `json:"status"`
	Description utils.FlexibleMsg    `json:"description"`
	RedirectURL string               `json:"redirect_url"`
}

// InitPaymentResult is what a successful initiation yields.
type InitPaymentResult struct {
	OrderID     string
	RedirectURL string
	Raw         map[string]any
}

// WebhookReq is the subset of the gateway notification that is applied to
// an order. Absent or zero fields are left untouched.
type WebhookReq struct {
	OrderID  utils.StringOrNumber `json:"order_id"`
	Status   utils.StringOrNumber `json:"status"`
	Amount   json.RawMessage      `json:"amount"`
	Currency string               `json:"currency"`
}

// OrderStatusEvent is published after a webhook changed an order.
type OrderStatusEvent struct {
	OrderID   string `json:"order_id"`
	CID       string `json:"cid"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	UpdatedAt int64  `json:"updated_at"`
}
