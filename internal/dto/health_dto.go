package dto

type GatewayHealth struct {
	SuccessRate float64 `json:"success_rate"`
	Degraded    bool    `json:"degraded"`
}

type HealthResp struct {
	OK      bool          `json:"ok"`
	Service string        `json:"service"`
	Env     string        `json:"env"`
	Gateway GatewayHealth `json:"gateway"`
}
