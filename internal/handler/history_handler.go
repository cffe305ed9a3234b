package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"praxis-cashier-api/internal/dto"
	"praxis-cashier-api/internal/middleware"
	"praxis-cashier-api/internal/service"
	"praxis-cashier-api/internal/utils"
)

type HistoryHandler struct {
	svc *service.HistoryService
	log *logrus.Logger
}

func NewHistoryHandler(svc *service.HistoryService, log *logrus.Logger) *HistoryHandler {
	return &HistoryHandler{svc: svc, log: log}
}

// List GET /api/history?cid=
func (h *HistoryHandler) List(c *gin.Context) {
	orders, err := h.svc.List(c.Request.Context(), c.Query("cid"))
	if err != nil {
		h.log.WithError(err).WithField("trace_id", c.GetString(middleware.TraceIDKey)).Error("history lookup failed")
		status, resp := utils.Fail(err)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, dto.HistoryResp{OK: true, Orders: orders})
}
