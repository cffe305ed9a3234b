package service

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"praxis-cashier-api/internal/channel/health"
	"praxis-cashier-api/internal/config"
	"praxis-cashier-api/internal/constant"
	"praxis-cashier-api/internal/dto"
	"praxis-cashier-api/internal/idgen"
	"praxis-cashier-api/internal/metrics"
	ordermodel "praxis-cashier-api/internal/model/order"
	"praxis-cashier-api/internal/repo"
	"praxis-cashier-api/internal/utils"
)

const IntentPayment = "payment"

type PraxisService struct {
	cfg     *config.Root
	store   repo.OrderStore
	gateway CashierGateway
	ids     *idgen.OrderIDGenerator
	health  *health.GatewayHealthManager
	metrics *metrics.Metrics
	log     *logrus.Logger
}

func NewPraxisService(cfg *config.Root, store repo.OrderStore, gateway CashierGateway, ids *idgen.OrderIDGenerator,
	hm *health.GatewayHealthManager, m *metrics.Metrics, log *logrus.Logger) *PraxisService {
	return &PraxisService{cfg: cfg, store: store, gateway: gateway, ids: ids, health: hm, metrics: m, log: log}
}

// Initiate validates the amount, records a pending order and asks the
// gateway for a cashier session. The pending record is written before the
// gateway call and is kept whatever the outcome.
func (s *PraxisService) Initiate(ctx context.Context, req dto.InitPaymentReq) (*dto.InitPaymentResult, error) {
	amount, ok := utils.ParseAmount(req.Amount)
	if !ok || !amount.IsPositive() {
		s.metrics.InitTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, constant.NewError(constant.CodeInvalidAmount)
	}

	currency := orDefault(req.Currency, s.cfg.Order.DefaultCurrency)
	cid := orDefault(req.CID, s.cfg.Order.DefaultCID)
	locale := orDefault(req.Locale, s.cfg.Order.DefaultLocale)

	orderID, now := s.ids.Next()
	payload := dto.CashierRequest{
		MerchantID:      s.cfg.Praxis.MerchantID,
		ApplicationKey:  s.cfg.Praxis.AppKey,
		Intent:          IntentPayment,
		Currency:        currency,
		Amount:          utils.ToMinorUnits(amount),
		CID:             cid,
		Locale:          locale,
		NotificationURL: s.cfg.NotificationURL(),
		ReturnURL:       s.cfg.ReturnURL(),
		OrderID:         orderID,
		Version:         s.cfg.Praxis.Version,
		Timestamp:       now.Unix(),
	}
	signature := utils.GenerateSign(utils.SignFields{
		MerchantID:     payload.MerchantID,
		ApplicationKey: payload.ApplicationKey,
		Timestamp:      strconv.FormatInt(payload.Timestamp, 10),
		Intent:         payload.Intent,
		CID:            payload.CID,
		OrderID:        payload.OrderID,
	}, s.cfg.Praxis.Secret)

	record := &ordermodel.OrderRecord{
		OrderID:   payload.OrderID,
		Amount:    payload.Amount,
		Currency:  payload.Currency,
		Status:    ordermodel.StatusPending,
		Timestamp: payload.Timestamp,
		CID:       payload.CID,
	}
	if err := s.store.Put(ctx, record); err != nil {
		s.metrics.InitTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"order_id": record.OrderID,
		"cid":      record.CID,
		"amount":   record.Amount,
		"currency": record.Currency,
	}).Info("pending order recorded")

	start := time.Now()
	result, err := s.gateway.CreateSession(ctx, payload, signature)
	s.metrics.GatewayDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.observeFailure(err)
		return nil, err
	}
	s.health.Update(true)
	s.metrics.InitTotal.WithLabelValues(metrics.ResultOK).Inc()
	return result, nil
}

func (s *PraxisService) observeFailure(err error) {
	result := metrics.ResultError
	if e, ok := constant.AsError(err); ok {
		switch e.Code() {
		case constant.CodeGatewayRejected:
			result = metrics.ResultRejected
		case constant.CodeGatewayUnreachable:
			result = metrics.ResultUnreachable
		}
	}
	s.health.Update(false)
	s.metrics.InitTotal.WithLabelValues(result).Inc()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
