package callback

import (
	"context"
	"errors"
	"testing"

	"praxis-cashier-api/internal/constant"
	"praxis-cashier-api/internal/dto"
	"praxis-cashier-api/internal/event"
	"praxis-cashier-api/internal/logger"
	ordermodel "praxis-cashier-api/internal/model/order"
	"praxis-cashier-api/internal/repo"
)

type recordingPublisher struct {
	topics []string
	events []dto.OrderStatusEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, msg any) error {
	p.topics = append(p.topics, topic)
	if e, ok := msg.(dto.OrderStatusEvent); ok {
		p.events = append(p.events, e)
	}
	return p.err
}

// failingStore returns err from Update.
type failingStore struct {
	repo.OrderStore
	err error
}

func (s failingStore) Update(context.Context, string, func(*ordermodel.OrderRecord)) (bool, error) {
	return false, s.err
}

// panickingStore panics from Update.
type panickingStore struct{ repo.OrderStore }

func (panickingStore) Update(context.Context, string, func(*ordermodel.OrderRecord)) (bool, error) {
	panic("boom")
}

func seed(t *testing.T) *repo.MemoryOrderStore {
	t.Helper()
	s := repo.NewMemoryOrderStore()
	_ = s.Put(context.Background(), &ordermodel.OrderRecord{
		OrderID: "ord_1", Amount: 2550, Currency: "USD", Status: ordermodel.StatusPending, Timestamp: 10, CID: "c1",
	})
	return s
}

func TestHandleNotification_StatusOnly(t *testing.T) {
	store := seed(t)
	pub := &recordingPublisher{}
	cb := NewPraxisCallback(store, pub, nil, logger.Discard())

	outcome, err := cb.HandleNotification(context.Background(), []byte(`{"order_id":"ord_1","status":"completed"}`), "1.2.3.4")
	if err != nil || outcome != OutcomeApplied {
		t.Fatalf("HandleNotification() = %v, %v", outcome, err)
	}
	got, _ := store.Get(context.Background(), "ord_1")
	want := ordermodel.OrderRecord{OrderID: "ord_1", Amount: 2550, Currency: "USD", Status: "completed", Timestamp: 10, CID: "c1"}
	if *got != want {
		t.Errorf("record = %+v, want %+v", *got, want)
	}
	if len(pub.events) != 1 || pub.topics[0] != event.TopicOrderStatusUpdated || pub.events[0].Status != "completed" || pub.events[0].CID != "c1" {
		t.Errorf("published %v %+v", pub.topics, pub.events)
	}
}

func TestHandleNotification_AllFields(t *testing.T) {
	store := seed(t)
	cb := NewPraxisCallback(store, nil, nil, logger.Discard())

	body := `{"order_id":"ord_1","status":"approved","amount":3000,"currency":"EUR","extra":{"x":1}}`
	if _, err := cb.HandleNotification(context.Background(), []byte(body), ""); err != nil {
		t.Fatal(err)
	}
	got, _ := store.Get(context.Background(), "ord_1")
	if got.Status != "approved" || got.Amount != 3000 || got.Currency != "EUR" || got.CID != "c1" || got.Timestamp != 10 {
		t.Errorf("record = %+v", *got)
	}
}

func TestHandleNotification_FalsyFieldsIgnored(t *testing.T) {
	store := seed(t)
	cb := NewPraxisCallback(store, nil, nil, logger.Discard())

	body := `{"order_id":"ord_1","status":"","amount":0,"currency":""}`
	if _, err := cb.HandleNotification(context.Background(), []byte(body), ""); err != nil {
		t.Fatal(err)
	}
	got, _ := store.Get(context.Background(), "ord_1")
	if got.Status != ordermodel.StatusPending || got.Amount != 2550 || got.Currency != "USD" {
		t.Errorf("record changed by empty fields: %+v", *got)
	}
}

func TestHandleNotification_OutOfRangeAmountIgnored(t *testing.T) {
	for _, amount := range []string{`1e20`, `92233720368547758.08`, `1e50000000`} {
		t.Run(amount, func(t *testing.T) {
			store := seed(t)
			cb := NewPraxisCallback(store, nil, nil, logger.Discard())

			body := `{"order_id":"ord_1","status":"completed","amount":` + amount + `}`
			if _, err := cb.HandleNotification(context.Background(), []byte(body), ""); err != nil {
				t.Fatal(err)
			}
			got, _ := store.Get(context.Background(), "ord_1")
			if got.Status != "completed" || got.Amount != 2550 {
				t.Errorf("record = %+v, want status applied and amount kept", *got)
			}
		})
	}
}

func TestHandleNotification_NonMonotonic(t *testing.T) {
	store := seed(t)
	cb := NewPraxisCallback(store, nil, nil, logger.Discard())
	ctx := context.Background()

	_, _ = cb.HandleNotification(ctx, []byte(`{"order_id":"ord_1","status":"completed"}`), "")
	_, _ = cb.HandleNotification(ctx, []byte(`{"order_id":"ord_1","status":"pending"}`), "")
	got, _ := store.Get(ctx, "ord_1")
	if got.Status != "pending" {
		t.Errorf("status = %q, want last write to win", got.Status)
	}
}

func TestHandleNotification_Ignored(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown order", `{"order_id":"ord_404","status":"completed"}`},
		{"missing order id", `{"status":"completed"}`},
		{"empty body", ``},
		{"null body", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seed(t)
			pub := &recordingPublisher{}
			cb := NewPraxisCallback(store, pub, nil, logger.Discard())

			outcome, err := cb.HandleNotification(context.Background(), []byte(tt.body), "")
			if err != nil || outcome != OutcomeIgnored {
				t.Fatalf("HandleNotification() = %v, %v", outcome, err)
			}
			got, _ := store.Get(context.Background(), "ord_1")
			if got.Status != ordermodel.StatusPending || store.Len() != 1 {
				t.Errorf("store modified: %+v", *got)
			}
			if len(pub.topics) != 0 {
				t.Errorf("event published for ignored notification")
			}
		})
	}
}

func TestHandleNotification_Allowlist(t *testing.T) {
	store := seed(t)
	cb := NewPraxisCallback(store, nil, []string{"203.0.113.10"}, logger.Discard())
	ctx := context.Background()
	body := []byte(`{"order_id":"ord_1","status":"completed"}`)

	outcome, err := cb.HandleNotification(ctx, body, "198.51.100.1")
	if err != nil || outcome != OutcomeIgnored {
		t.Fatalf("foreign source: %v, %v", outcome, err)
	}
	got, _ := store.Get(ctx, "ord_1")
	if got.Status != ordermodel.StatusPending {
		t.Fatalf("foreign source changed order: %+v", *got)
	}

	outcome, err = cb.HandleNotification(ctx, body, "203.0.113.10")
	if err != nil || outcome != OutcomeApplied {
		t.Fatalf("allowed source: %v, %v", outcome, err)
	}
}

func TestHandleNotification_Errors(t *testing.T) {
	ctx := context.Background()
	body := []byte(`{"order_id":"ord_1","status":"completed"}`)

	cb := NewPraxisCallback(seed(t), nil, nil, logger.Discard())
	if _, err := cb.HandleNotification(ctx, []byte(`{"order_id":`), ""); !isWebhookError(err) {
		t.Errorf("malformed JSON: err = %v", err)
	}

	storeErr := errors.New("redis down")
	cb = NewPraxisCallback(failingStore{err: storeErr}, nil, nil, logger.Discard())
	_, err := cb.HandleNotification(ctx, body, "")
	if !isWebhookError(err) || !errors.Is(err, storeErr) {
		t.Errorf("store failure: err = %v", err)
	}

	cb = NewPraxisCallback(panickingStore{}, nil, nil, logger.Discard())
	if _, err := cb.HandleNotification(ctx, body, ""); !isWebhookError(err) {
		t.Errorf("panic: err = %v", err)
	}
}

func TestHandleNotification_PublishFailureStillApplies(t *testing.T) {
	store := seed(t)
	cb := NewPraxisCallback(store, &recordingPublisher{err: errors.New("broker gone")}, nil, logger.Discard())

	outcome, err := cb.HandleNotification(context.Background(), []byte(`{"order_id":"ord_1","status":"failed"}`), "")
	if err != nil || outcome != OutcomeApplied {
		t.Fatalf("HandleNotification() = %v, %v", outcome, err)
	}
}

func isWebhookError(err error) bool {
	e, ok := constant.AsError(err)
	return ok && e.Code() == constant.CodeWebhookProcessing
}
