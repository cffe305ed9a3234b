package callback

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"praxis-cashier-api/internal/constant"
	"praxis-cashier-api/internal/dto"
	"praxis-cashier-api/internal/event"
	ordermodel "praxis-cashier-api/internal/model/order"
	"praxis-cashier-api/internal/repo"
	"praxis-cashier-api/internal/utils"
)

// Outcome of one notification.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeIgnored         // no order_id, unknown order or source not allowed
)

// PraxisCallback merges gateway notifications into stored orders. Inbound
// notifications are not signed; the optional IP allowlist is the only source
// check.
type PraxisCallback struct {
	store     repo.OrderStore
	pub       event.Publisher
	allowlist []string
	log       *logrus.Logger
}

func NewPraxisCallback(store repo.OrderStore, pub event.Publisher, allowlist []string, log *logrus.Logger) *PraxisCallback {
	if pub == nil {
		pub = event.NopPublisher{}
	}
	return &PraxisCallback{store: store, pub: pub, allowlist: allowlist, log: log}
}

// HandleNotification applies body to the referenced order. Errors are
// *constant.PayError with CodeWebhookProcessing; the HTTP layer acknowledges
// regardless.
func (s *PraxisCallback) HandleNotification(ctx context.Context, body []byte, sourceIP string) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomeIgnored
			err = constant.NewErrorWithMessage(constant.CodeWebhookProcessing, fmt.Sprintf("panic: %v", r))
		}
	}()

	if !utils.IPAllowed(sourceIP, s.allowlist) {
		s.log.WithField("ip", sourceIP).Warn("[CALLBACK-PRAXIS] source ip not in whitelist")
		return OutcomeIgnored, nil
	}

	var msg dto.WebhookReq
	if len(body) > 0 {
		if err := json.Unmarshal(body, &msg); err != nil {
			return OutcomeIgnored, constant.NewError(constant.CodeWebhookProcessing).WithCause(err)
		}
	}
	orderID := msg.OrderID.String()
	if orderID == "" {
		return OutcomeIgnored, nil
	}

	status := msg.Status.String()
	amount, hasAmount := utils.ParseAmount(msg.Amount)
	hasAmount = hasAmount && !amount.IsZero()

	var updated ordermodel.OrderRecord
	found, err := s.store.Update(ctx, orderID, func(o *ordermodel.OrderRecord) {
		if status != "" {
			o.Status = status
		}
		if hasAmount {
			o.Amount = amount.Round(0).IntPart()
		}
		if msg.Currency != "" {
			o.Currency = msg.Currency
		}
		updated = *o
	})
	if err != nil {
		return OutcomeIgnored, constant.NewError(constant.CodeWebhookProcessing).WithCause(err)
	}
	if !found {
		s.log.WithField("order_id", orderID).Info("[CALLBACK-PRAXIS] unknown order")
		return OutcomeIgnored, nil
	}

	s.log.WithFields(logrus.Fields{
		"order_id": updated.OrderID,
		"status":   updated.Status,
		"amount":   updated.Amount,
		"currency": updated.Currency,
	}).Info("[CALLBACK-PRAXIS] order updated")

	evt := dto.OrderStatusEvent{
		OrderID:   updated.OrderID,
		CID:       updated.CID,
		Status:    updated.Status,
		Amount:    updated.Amount,
		Currency:  updated.Currency,
		UpdatedAt: time.Now().Unix(),
	}
	if pubErr := s.pub.Publish(ctx, event.TopicOrderStatusUpdated, evt); pubErr != nil {
		s.log.WithError(pubErr).WithField("order_id", orderID).Warn("[CALLBACK-PRAXIS] publish status event failed")
	}
	return OutcomeApplied, nil
}
