// Package rabbitmq moves domain events through RabbitMQ using the default
// exchange, one durable queue per event kind.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/event"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

// PublishChannel is the part of *amqp.Channel the publisher needs.
type PublishChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// PublishObserver is notified of every publish attempt.
type PublishObserver interface {
	EventPublished(queue string, err error)
}

type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  PublishChannel
	reopen   func() (PublishChannel, error)
	logger   logger.Logger
	observer PublishObserver
}

// Dial opens a dedicated connection and channel for publishing.
func Dial(url string, log logger.Logger, observer PublishObserver) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	open := func() (PublishChannel, error) {
		return conn.Channel()
	}
	ch, err := open()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	p := NewPublisher(ch, log, observer)
	p.conn = conn
	p.reopen = open
	return p, nil
}

func NewPublisher(ch PublishChannel, log logger.Logger, observer PublishObserver) *Publisher {
	return &Publisher{
		channel:  ch,
		logger:   log,
		observer: observer,
	}
}

func (p *Publisher) Publish(ctx context.Context, message event.Message, queue string) error {
	err := p.publish(ctx, message, queue)
	if p.observer != nil {
		p.observer.EventPublished(queue, err)
	}

	meta := message.Meta()
	fields := map[string]interface{}{
		"queue":      queue,
		"event_type": meta.EventType,
		"message_id": meta.MessageID,
	}
	if err != nil {
		p.logger.Error(ctx, "Failed to publish message", err, fields)
		return err
	}
	p.logger.Info(ctx, "Message published", fields)
	return nil
}

func (p *Publisher) publish(ctx context.Context, message event.Message, queue string) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	meta := message.Meta()
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    meta.MessageID,
		Timestamp:    meta.Timestamp,
		Type:         meta.EventType,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.send(ctx, queue, msg)
	if errors.Is(err, amqp.ErrClosed) && p.reopen != nil {
		ch, openErr := p.reopen()
		if openErr != nil {
			return fmt.Errorf("failed to reopen channel: %w", openErr)
		}
		p.channel = ch
		err = p.send(ctx, queue, msg)
	}
	return err
}

// send expects p.mu to be held.
func (p *Publisher) send(ctx context.Context, queue string, msg amqp.Publishing) error {
	if _, err := p.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	if err := p.channel.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queue, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

// NoopPublisher logs messages instead of sending them.
type NoopPublisher struct {
	logger logger.Logger
}

func NewNoopPublisher(log logger.Logger) *NoopPublisher {
	return &NoopPublisher{logger: log}
}

func (n *NoopPublisher) Publish(ctx context.Context, message event.Message, queue string) error {
	meta := message.Meta()
	n.logger.Debug(ctx, "Broker disabled, message dropped", map[string]interface{}{
		"queue":      queue,
		"event_type": meta.EventType,
		"message_id": meta.MessageID,
	})
	return nil
}

var (
	_ outbound.EventPublisher = (*Publisher)(nil)
	_ outbound.EventPublisher = (*NoopPublisher)(nil)
)
