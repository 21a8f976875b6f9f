package rabbitmq

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type fakeChannel struct {
	mu         sync.Mutex
	declared   []string
	published  []amqp.Publishing
	keys       []string
	publishErr error
	closed     bool

	qos     int
	streams map[string]chan amqp.Delivery
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{streams: make(map[string]chan amqp.Delivery)}
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Qos(prefetchCount, prefetchSize int, global bool) error {
	f.qos = prefetchCount
	return nil
}

func (f *fakeChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.streams[queue]
	if !ok {
		ch = make(chan amqp.Delivery, 4)
		f.streams[queue] = ch
	}
	return ch, nil
}

func (f *fakeChannel) stream(queue string) chan amqp.Delivery {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.streams[queue]
	if !ok {
		ch = make(chan amqp.Delivery, 4)
		f.streams[queue] = ch
	}
	return ch
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type ackCall struct {
	tag     uint64
	ack     bool
	requeue bool
}

// fakeAcknowledger records acks and nacks and signals each one on done.
type fakeAcknowledger struct {
	mu    sync.Mutex
	calls []ackCall
	done  chan struct{}
}

func newFakeAcknowledger() *fakeAcknowledger {
	return &fakeAcknowledger{done: make(chan struct{}, 16)}
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.record(ackCall{tag: tag, ack: true})
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.record(ackCall{tag: tag, requeue: requeue})
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	a.record(ackCall{tag: tag, requeue: requeue})
	return nil
}

func (a *fakeAcknowledger) record(c ackCall) {
	a.mu.Lock()
	a.calls = append(a.calls, c)
	a.mu.Unlock()
	a.done <- struct{}{}
}

func (a *fakeAcknowledger) snapshot() []ackCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ackCall(nil), a.calls...)
}

type recordingObserver struct {
	mu        sync.Mutex
	published map[string]int
	consumed  map[string]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{published: map[string]int{}, consumed: map[string]int{}}
}

func (o *recordingObserver) EventPublished(queue string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	status := "success"
	if err != nil {
		status = "error"
	}
	o.published[queue+"/"+status]++
}

func (o *recordingObserver) EventConsumed(queue, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.consumed[queue+"/"+outcome]++
}
