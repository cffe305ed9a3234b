package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"praxis-cashier-api/internal/constant"
	"praxis-cashier-api/internal/dto"
	"praxis-cashier-api/internal/utils"
)

const AuthHeader = "GT-Authentication"

// CashierGateway opens a hosted payment page session.
type CashierGateway interface {
	CreateSession(ctx context.Context, req dto.CashierRequest, signature string) (*dto.InitPaymentResult, error)
}

// PraxisClient calls the Praxis cashier endpoint. Each call is bounded by
// timeout and is never retried.
type PraxisClient struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
	log      *logrus.Logger
}

func NewPraxisClient(endpoint string, timeout time.Duration, client *http.Client, log *logrus.Logger) *PraxisClient {
	if client == nil {
		client = &http.Client{}
	}
	return &PraxisClient{endpoint: endpoint, timeout: timeout, client: client, log: log}
}

// CreateSession 调用上游服务下单. Failures are *constant.PayError with code
// CodeGatewayUnreachable (transport) or CodeGatewayRejected (non-2xx or no
// redirect_url).
func (p *PraxisClient) CreateSession(ctx context.Context, req dto.CashierRequest, signature string) (*dto.InitPaymentResult, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	entry := p.log.WithFields(logrus.Fields{
		"order_id": req.OrderID,
		"endpoint": p.endpoint,
	})
	entry.Info("[Upstream-Cashier] request")

	status, body, err := utils.HttpPostJsonWithContext(ctxTimeout, p.client, p.endpoint,
		map[string]string{AuthHeader: signature}, req)
	if err != nil {
		entry.WithError(err).Error("[Upstream-Cashier] request failed")
		return nil, constant.NewErrorWithMessage(constant.CodeGatewayUnreachable, err.Error()).WithCause(err)
	}

	raw := utils.DecodeObject(body)
	var resp dto.CashierResponse
	if jsonErr := json.Unmarshal(body, &resp); jsonErr != nil {
		entry.WithError(jsonErr).Warn("[Upstream-Cashier] response is not a JSON object")
	}

	if !utils.IsSuccessStatus(status) || resp.RedirectURL == "" {
		msg := resp.Description.Text
		if msg == "" {
			msg = constant.MarkerGatewayError
		}
		entry.WithFields(logrus.Fields{
			"http_status": status,
			"status":      resp.Status.String(),
			"description": resp.Description.Text,
		}).Warn("[Upstream-Cashier] rejected")
		return nil, constant.NewErrorWithMessage(constant.CodeGatewayRejected, msg).WithRaw(raw)
	}

	entry.WithField("redirect_url", resp.RedirectURL).Info("[Upstream-Cashier] session created")
	return &dto.InitPaymentResult{OrderID: req.OrderID, RedirectURL: resp.RedirectURL, Raw: raw}, nil
}
