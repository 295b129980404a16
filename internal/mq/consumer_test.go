package mq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"conectaleads/internal/config"
	"conectaleads/internal/events"
	"conectaleads/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type ackCall struct {
	tag     uint64
	ack     bool
	requeue bool
}

type fakeAcknowledger struct {
	mu    sync.Mutex
	calls []ackCall
}

func (f *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ackCall{tag: tag, ack: true})
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ackCall{tag: tag, requeue: requeue})
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func (f *fakeAcknowledger) snapshot() []ackCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ackCall(nil), f.calls...)
}

type handlerFunc func(ctx context.Context, key string, body []byte) error

func (f handlerFunc) Handle(ctx context.Context, key string, body []byte) error {
	return f(ctx, key, body)
}

func newTestConsumer(h events.Handler, buf *bytes.Buffer) *Consumer {
	return NewConsumer(config.RabbitConfig{Queue: "notification.q"}, events.Bindings, "test", h, logging.New(buf, time.UTC))
}

func TestConsumer_AckNackPolicy(t *testing.T) {
	ack := &fakeAcknowledger{}
	h := handlerFunc(func(_ context.Context, key string, body []byte) error {
		switch key {
		case events.RKLeadCreated:
			return nil
		case events.RKLeadUpdated:
			return &events.DecodeError{Err: errors.New("bad json")}
		default:
			return errors.New("db down")
		}
	})

	var buf bytes.Buffer
	c := newTestConsumer(h, &buf)

	msgs := make(chan amqp.Delivery, 3)
	msgs <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, RoutingKey: events.RKLeadCreated}
	msgs <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 2, RoutingKey: events.RKLeadUpdated}
	msgs <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 3, RoutingKey: events.RKBrokerCreated}
	close(msgs)

	err := c.consume(context.Background(), msgs)
	assert.ErrorIs(t, err, ErrDeliveriesClosed)

	assert.Equal(t, []ackCall{
		{tag: 1, ack: true},
		{tag: 2, requeue: false},
		{tag: 3, requeue: true},
	}, ack.snapshot())
	assert.Contains(t, buf.String(), "mq_message_dead_lettered")
	assert.Contains(t, buf.String(), "mq_message_requeued")
}

func TestConsumer_StopsOnCancel(t *testing.T) {
	c := newTestConsumer(handlerFunc(func(context.Context, string, []byte) error { return nil }), &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	msgs := make(chan amqp.Delivery)
	done := make(chan error, 1)
	go func() { done <- c.consume(ctx, msgs) }()

	ack := &fakeAcknowledger{}
	msgs <- amqp.Delivery{Acknowledger: ack, DeliveryTag: 9, RoutingKey: events.RKLeadCreated}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancel")
	}
	assert.Equal(t, []ackCall{{tag: 9, ack: true}}, ack.snapshot())
}

func TestNewPublishing(t *testing.T) {
	msg, err := newPublishing("conectaleads", events.LeadCreated{LeadID: 4, Name: "Ana"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "conectaleads", msg.AppId)
	assert.NotEmpty(t, msg.MessageId)

	ev, err := events.Decode[events.LeadCreated](msg.Body)
	require.NoError(t, err)
	assert.Equal(t, int64(4), ev.LeadID)

	_, err = newPublishing("x", func() {})
	var ue *json.UnsupportedTypeError
	assert.ErrorAs(t, err, &ue)
}
