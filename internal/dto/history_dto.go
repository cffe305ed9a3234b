package dto

import ordermodel "praxis-cashier-api/internal/model/order"

type HistoryResp struct {
	OK     bool                     `json:"ok"`
	Orders []ordermodel.OrderRecord `json:"orders"`
}
