package ordermodel

const StatusPending = "pending"

// OrderRecord 一次支付尝试
type OrderRecord struct {
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"` // minor units
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"` // epoch seconds
	CID       string `json:"cid"`
}
