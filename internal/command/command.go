// Package command holds the write side: services that change users, accounts
// and sessions, keep the Redis read model fresh and publish lifecycle events.
package command

import "context"

// EventPublisher appends a lifecycle event to a stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}
