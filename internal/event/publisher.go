package event

import "context"

const TopicOrderStatusUpdated = "order.status_updated"

type Publisher interface {
	Publish(ctx context.Context, topic string, msg any) error
}

// NopPublisher drops every event; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
