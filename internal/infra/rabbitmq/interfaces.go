package rabbitmq

import "context"

// EventPublisher pushes a storefront event onto the topic exchange under
// the given routing key. Callers publish fire-and-forget from goroutines,
// so implementations must be safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

var _ EventPublisher = (*Publisher)(nil)
