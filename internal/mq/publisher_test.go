package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, "order_events")

	err := p.Publish(context.Background(), "order.status_updated", map[string]string{"order_id": "ord_1"})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if ch.exchange != "order_events" || ch.key != "order.status_updated" {
		t.Errorf("published to %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.ContentType != "application/json" || ch.msg.DeliveryMode != amqp.Persistent {
		t.Errorf("unexpected publishing: %+v", ch.msg)
	}
	var body map[string]string
	if err := json.Unmarshal(ch.msg.Body, &body); err != nil || body["order_id"] != "ord_1" {
		t.Errorf("body = %s", ch.msg.Body)
	}
}

func TestPublisher_Errors(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := NewPublisher(ch, "x")
	if err := p.Publish(context.Background(), "t", 1); err == nil {
		t.Fatal("expected channel error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Publish(ctx, "t", 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("Publish() on cancelled ctx = %v", err)
	}
}
