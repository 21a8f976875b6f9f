package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
	"github.com/vobe/staff-auth-service/infrastructure/service/metrics"
)

// ConsumeChannel is the part of *amqp.Channel the consumer needs.
type ConsumeChannel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// ConsumeObserver is notified of every ack or nack.
type ConsumeObserver interface {
	EventConsumed(queue, outcome string)
}

// Handler processes one delivery. A nil return acks it; an error nacks it
// back onto the queue.
type Handler func(ctx context.Context, d amqp.Delivery) error

var ErrDeliveriesClosed = errors.New("delivery channel closed by broker")

type Consumer struct {
	channel  ConsumeChannel
	conn     io.Closer
	prefetch int
	handlers map[string]Handler
	order    []string
	logger   logger.Logger
	observer ConsumeObserver
}

// DialConsumer opens a connection of its own, separate from any publisher.
func DialConsumer(url string, prefetch int, log logger.Logger, observer ConsumeObserver) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	c := NewConsumer(ch, prefetch, log, observer)
	c.conn = conn
	return c, nil
}

func NewConsumer(ch ConsumeChannel, prefetch int, log logger.Logger, observer ConsumeObserver) *Consumer {
	if prefetch <= 0 {
		prefetch = 10
	}
	return &Consumer{
		channel:  ch,
		prefetch: prefetch,
		handlers: make(map[string]Handler),
		logger:   log.WithFields(map[string]interface{}{"component": "consumer"}),
		observer: observer,
	}
}

// Register binds a handler to a queue. Call before Run.
func (c *Consumer) Register(queue string, h Handler) {
	if _, ok := c.handlers[queue]; !ok {
		c.order = append(c.order, queue)
	}
	c.handlers[queue] = h
}

// Run consumes every registered queue until ctx is cancelled, then closes
// the channel and connection. It returns early with an error if setup fails
// or the broker closes a delivery stream.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.close()

	if err := c.channel.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	streams := make(map[string]<-chan amqp.Delivery, len(c.order))
	for _, queue := range c.order {
		if _, err := c.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
		deliveries, err := c.channel.Consume(queue, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("failed to consume queue %s: %w", queue, err)
		}
		streams[queue] = deliveries
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for _, queue := range c.order {
		wg.Add(1)
		go func(queue string, deliveries <-chan amqp.Delivery) {
			defer wg.Done()
			if err := c.loop(ctx, queue, deliveries); err != nil {
				errOnce.Do(func() {
					firstErr = err
					cancel()
				})
			}
		}(queue, streams[queue])
	}

	c.logger.Info(ctx, "Consumer started", map[string]interface{}{
		"queues":   c.order,
		"prefetch": c.prefetch,
	})

	wg.Wait()
	c.logger.Info(context.Background(), "Consumer stopped", nil)
	return firstErr
}

func (c *Consumer) loop(ctx context.Context, queue string, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%w: %s", ErrDeliveriesClosed, queue)
			}
			c.handle(ctx, queue, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, queue string, d amqp.Delivery) {
	fields := map[string]interface{}{
		"queue":        queue,
		"message_id":   d.MessageId,
		"delivery_tag": d.DeliveryTag,
		"redelivered":  d.Redelivered,
	}

	if err := c.handlers[queue](ctx, d); err != nil {
		c.logger.Error(ctx, "Failed to process message, requeueing", err, fields)
		if nackErr := d.Nack(false, true); nackErr != nil {
			c.logger.Error(ctx, "Failed to nack message", nackErr, fields)
		}
		c.observe(queue, metrics.OutcomeNack)
		return
	}

	if err := d.Ack(false); err != nil {
		c.logger.Error(ctx, "Failed to ack message", err, fields)
	}
	c.observe(queue, metrics.OutcomeAck)
}

func (c *Consumer) observe(queue, outcome string) {
	if c.observer != nil {
		c.observer.EventConsumed(queue, outcome)
	}
}

func (c *Consumer) close() {
	if err := c.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		c.logger.Warn(context.Background(), "Failed to close consumer channel", map[string]interface{}{"error": err.Error()})
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			c.logger.Warn(context.Background(), "Failed to close consumer connection", map[string]interface{}{"error": err.Error()})
		}
	}
}
