package outbound

import (
	"context"
	"errors"

	"github.com/vobe/staff-auth-service/domain/event"
)

var ErrEventPublishFailed = errors.New("failed to publish event")

// EventPublisher delivers a message to a named queue. A returned error means
// the message may not have reached the broker; callers do not undo the write
// that triggered it.
type EventPublisher interface {
	Publish(ctx context.Context, message event.Message, queue string) error
}

// QueueSet names the queues a resource publishes its lifecycle events to.
type QueueSet struct {
	Created string
	Updated string
	Deleted string
}
