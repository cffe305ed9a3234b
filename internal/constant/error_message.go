package constant

import "net/http"

// Error codes
const (
	CodeSuccess            = 0
	CodeInternalError      = 1000 // unexpected failure inside the service
	CodeInvalidAmount      = 1100 // amount absent, non-numeric or not positive
	CodeGatewayRejected    = 3002 // gateway answered non-2xx or without redirect_url
	CodeGatewayUnreachable = 3006 // transport failure talking to the gateway
	CodeWebhookProcessing  = 3100 // inbound callback could not be applied
)

// Wire markers returned in the `error` field.
const (
	MarkerAmountRequired = "amount_required"
	MarkerGatewayError   = "gateway_error"
	MarkerInternalError  = "internal_error"
)

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	Marker     string `json:"marker"`
	EN         string `json:"en"`
	HTTPStatus int    `json:"-"`
}

var ErrorMessages = map[int]ErrorInfo{
	CodeSuccess:            {"", "Success", http.StatusOK},
	CodeInternalError:      {MarkerInternalError, "Internal error", http.StatusInternalServerError},
	CodeInvalidAmount:      {MarkerAmountRequired, "Amount is required and must be positive", http.StatusBadRequest},
	CodeGatewayRejected:    {MarkerGatewayError, "Gateway rejected the payment session", http.StatusBadRequest},
	CodeGatewayUnreachable: {MarkerGatewayError, "Gateway unreachable", http.StatusInternalServerError},
	CodeWebhookProcessing:  {"", "Webhook could not be applied", http.StatusOK},
}
