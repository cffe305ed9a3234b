package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"praxis-cashier-api/internal/callback"
	"praxis-cashier-api/internal/dto"
	"praxis-cashier-api/internal/metrics"
	"praxis-cashier-api/internal/middleware"
	"praxis-cashier-api/internal/service"
	"praxis-cashier-api/internal/utils"
)

// maxBodyBytes bounds how much of a request body is read.
const maxBodyBytes = 1 << 20

// PraxisHandler serves payment initiation and the gateway webhook.
type PraxisHandler struct {
	svc      *service.PraxisService
	callback *callback.PraxisCallback
	metrics  *metrics.Metrics
	log      *logrus.Logger
}

func NewPraxisHandler(svc *service.PraxisService, cb *callback.PraxisCallback, m *metrics.Metrics, log *logrus.Logger) *PraxisHandler {
	return &PraxisHandler{svc: svc, callback: cb, metrics: m, log: log}
}

// Init POST /api/praxis/init
func (h *PraxisHandler) Init(c *gin.Context) {
	var req dto.InitPaymentReq
	if err := bindInitRequest(c, &req); err != nil {
		// an unreadable body has no usable amount
		h.log.WithError(err).WithField("trace_id", c.GetString(middleware.TraceIDKey)).Warn("invalid init request body")
		req = dto.InitPaymentReq{}
	}

	result, err := h.svc.Initiate(c.Request.Context(), req)
	if err != nil {
		status, resp := utils.Fail(err)
		h.log.WithFields(logrus.Fields{
			"trace_id": c.GetString(middleware.TraceIDKey),
			"status":   status,
		}).WithError(err).Warn("payment initiation failed")
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, utils.Redirect(result.RedirectURL, result.Raw))
}

// bindInitRequest accepts JSON or urlencoded form bodies.
func bindInitRequest(c *gin.Context, req *dto.InitPaymentReq) error {
	if c.ContentType() == gin.MIMEPOSTForm {
		b, err := formAsJSON(c)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, req)
	}
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(req)
}

// formAsJSON re-encodes an urlencoded body as a JSON object of strings, the
// first value winning for repeated keys.
func formAsJSON(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return json.Marshal(fields)
}

// readWebhookBody returns the notification as JSON whatever its encoding.
func readWebhookBody(c *gin.Context) ([]byte, error) {
	if c.ContentType() == gin.MIMEPOSTForm {
		return formAsJSON(c)
	}
	return io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
}

// Webhook POST /api/praxis/webhook. The gateway always gets 200 {ok:true};
// anything that goes wrong is logged and dropped so it does not redeliver.
func (h *PraxisHandler) Webhook(c *gin.Context) {
	entry := h.log.WithField("trace_id", c.GetString(middleware.TraceIDKey))

	body, err := readWebhookBody(c)
	if err != nil {
		entry.WithError(err).Warn("[CALLBACK-PRAXIS] read body failed, acknowledged")
		h.metrics.WebhookTotal.WithLabelValues(metrics.ResultError).Inc()
		c.JSON(http.StatusOK, utils.Ack())
		return
	}

	outcome, err := h.callback.HandleNotification(c.Request.Context(), body, c.ClientIP())
	switch {
	case err != nil:
		entry.WithError(err).Warn("[CALLBACK-PRAXIS] processing failed, acknowledged")
		h.metrics.WebhookTotal.WithLabelValues(metrics.ResultError).Inc()
	case outcome == callback.OutcomeIgnored:
		h.metrics.WebhookTotal.WithLabelValues(metrics.ResultIgnored).Inc()
	default:
		h.metrics.WebhookTotal.WithLabelValues(metrics.ResultOK).Inc()
	}
	c.JSON(http.StatusOK, utils.Ack())
}
