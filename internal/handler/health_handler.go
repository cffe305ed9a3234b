package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"praxis-cashier-api/internal/channel/health"
	"praxis-cashier-api/internal/dto"
)

const serviceName = "praxis-cashier-api"

type HealthHandler struct {
	env     string
	gateway *health.GatewayHealthManager
}

func NewHealthHandler(env string, gateway *health.GatewayHealthManager) *HealthHandler {
	return &HealthHandler{env: env, gateway: gateway}
}

// Get GET /health
func (h *HealthHandler) Get(c *gin.Context) {
	rate, degraded := h.gateway.Snapshot()
	c.JSON(http.StatusOK, dto.HealthResp{
		OK:      true,
		Service: serviceName,
		Env:     h.env,
		Gateway: dto.GatewayHealth{SuccessRate: rate, Degraded: degraded},
	})
}
