package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vobe/staff-auth-service/domain/event"
	"github.com/vobe/staff-auth-service/infrastructure/config"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

// RegisterDefaultHandlers binds a decode-and-log handler to each of the
// seven queues.
func RegisterDefaultHandlers(c *Consumer, queues config.QueueConfig, log logger.Logger) {
	c.Register(queues.EmployeeCreated, logCreated(log))
	c.Register(queues.ManagerCreated, logCreated(log))
	c.Register(queues.EmployeeUpdated, logUpdated(log))
	c.Register(queues.ManagerUpdated, logUpdated(log))
	c.Register(queues.EmployeeDeleted, logDeleted(log))
	c.Register(queues.ManagerDeleted, logDeleted(log))
	c.Register(queues.UserLogin, logLogin(log))
}

// decode rejects bodies that are not JSON objects for T. A failure nacks
// with requeue, so a malformed message is redelivered until removed by hand.
func decode[T any](d amqp.Delivery) (*T, error) {
	var msg T
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode message %s: %w", d.MessageId, err)
	}
	return &msg, nil
}

func logCreated(log logger.Logger) Handler {
	return func(ctx context.Context, d amqp.Delivery) error {
		msg, err := decode[event.EmployeeCreated](d)
		if err != nil {
			return err
		}
		log.Info(ctx, "Processing "+msg.EventType, map[string]interface{}{
			"message_id":  msg.MessageID,
			"employee_id": msg.ID,
			"name":        msg.Name,
			"type":        msg.Type,
		})
		return nil
	}
}

func logUpdated(log logger.Logger) Handler {
	return func(ctx context.Context, d amqp.Delivery) error {
		msg, err := decode[event.EmployeeUpdated](d)
		if err != nil {
			return err
		}
		log.Info(ctx, "Processing "+msg.EventType, map[string]interface{}{
			"message_id":  msg.MessageID,
			"employee_id": msg.ID,
			"name":        msg.Name,
		})
		return nil
	}
}

func logDeleted(log logger.Logger) Handler {
	return func(ctx context.Context, d amqp.Delivery) error {
		msg, err := decode[event.EmployeeDeleted](d)
		if err != nil {
			return err
		}
		log.Info(ctx, "Processing "+msg.EventType, map[string]interface{}{
			"message_id":  msg.MessageID,
			"employee_id": msg.ID,
			"name":        msg.Name,
			"deleted_at":  msg.DeletedAt,
		})
		return nil
	}
}

func logLogin(log logger.Logger) Handler {
	return func(ctx context.Context, d amqp.Delivery) error {
		msg, err := decode[event.UserLogin](d)
		if err != nil {
			return err
		}
		log.Info(ctx, "Processing "+msg.EventType, map[string]interface{}{
			"message_id": msg.MessageID,
			"user_id":    msg.UserID,
			"email":      msg.Email,
			"login_time": msg.LoginTime,
		})
		return nil
	}
}
