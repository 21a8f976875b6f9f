package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vobe/staff-auth-service/infrastructure/config"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

func waitAck(t *testing.T, a *fakeAcknowledger) {
	t.Helper()
	select {
	case <-a.done:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery was neither acked nor nacked")
	}
}

func startConsumer(t *testing.T, c *Consumer) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- c.Run(ctx) }()
	return cancel, errs
}

func TestConsumer_AcksOnSuccessAndNacksOnFailure(t *testing.T) {
	ch := newFakeChannel()
	obs := newRecordingObserver()
	c := NewConsumer(ch, 10, logger.NewNop(), obs)

	c.Register("work", func(ctx context.Context, d amqp.Delivery) error {
		if string(d.Body) == "bad" {
			return errors.New("cannot handle")
		}
		return nil
	})

	cancel, errs := startConsumer(t, c)
	ack := newFakeAcknowledger()

	ch.stream("work") <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: []byte("good")}
	waitAck(t, ack)
	ch.stream("work") <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte("bad")}
	waitAck(t, ack)

	cancel()
	require.NoError(t, <-errs)

	assert.Equal(t, []ackCall{
		{tag: 1, ack: true},
		{tag: 2, ack: false, requeue: true},
	}, ack.snapshot())
	assert.Equal(t, 10, ch.qos)
	assert.Contains(t, ch.declared, "work")
	assert.True(t, ch.closed)
	assert.Equal(t, 1, obs.consumed["work/ack"])
	assert.Equal(t, 1, obs.consumed["work/nack"])
}

func TestConsumer_BrokerClosingStreamIsAnError(t *testing.T) {
	ch := newFakeChannel()
	c := NewConsumer(ch, 0, logger.NewNop(), nil)
	c.Register("work", func(ctx context.Context, d amqp.Delivery) error { return nil })

	_, errs := startConsumer(t, c)
	close(ch.stream("work"))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrDeliveriesClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestDefaultHandlers_DecodeEveryQueue(t *testing.T) {
	queues := config.QueueConfig{
		EmployeeCreated: "employee.created",
		EmployeeUpdated: "employee.updated",
		EmployeeDeleted: "employee.deleted",
		ManagerCreated:  "manager.created",
		ManagerUpdated:  "manager.updated",
		ManagerDeleted:  "manager.deleted",
		UserLogin:       "user.login",
	}
	ch := newFakeChannel()
	c := NewConsumer(ch, 10, logger.NewNop(), nil)
	RegisterDefaultHandlers(c, queues, logger.NewNop())

	assert.ElementsMatch(t, queues.All(), c.order)

	body, err := json.Marshal(sampleCreated())
	require.NoError(t, err)

	cancel, errs := startConsumer(t, c)
	defer func() {
		cancel()
		<-errs
	}()

	ack := newFakeAcknowledger()
	ch.stream("manager.created") <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 7, Body: body}
	waitAck(t, ack)
	ch.stream("user.login") <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 8, Body: []byte("{not json")}
	waitAck(t, ack)

	calls := ack.snapshot()
	require.Len(t, calls, 2)
	assert.True(t, calls[0].ack)
	assert.False(t, calls[1].ack)
	assert.True(t, calls[1].requeue)
}
