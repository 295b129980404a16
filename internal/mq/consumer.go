package mq

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"conectaleads/internal/config"
	"conectaleads/internal/events"
)

// ErrDeliveriesClosed is returned by Run when the broker closes the delivery channel.
var ErrDeliveriesClosed = errors.New("mq: delivery channel closed")

// Consumer feeds a queue bound to the event exchange into an events.Handler.
//
// Messages are acked after the handler succeeds. Payloads that cannot be decoded
// are rejected without requeue so they land in the dead letter queue; any other
// handler error requeues the message.
type Consumer struct {
	cfg      config.RabbitConfig
	bindings []string
	tag      string
	h        events.Handler
	log      *zap.Logger

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg config.RabbitConfig, bindings []string, tag string, h events.Handler, log *zap.Logger) *Consumer {
	return &Consumer{
		cfg:      cfg,
		bindings: bindings,
		tag:      tag,
		h:        h,
		log:      log.With(zap.String("component", "mq_consumer"), zap.String("queue", cfg.Queue)),
	}
}

// Connect dials RabbitMQ and declares the exchange, queue, bindings, DLX and DLQ.
func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("rabbit dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel failed: %w", err)
	}
	fail := func(format string, err error) error {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf(format, err)
	}

	if err := ch.ExchangeDeclare(c.cfg.DLX, "topic", true, false, false, false, nil); err != nil {
		return fail("declare dlx failed: %w", err)
	}
	if _, err := ch.QueueDeclare(c.cfg.DLQ, true, false, false, false, nil); err != nil {
		return fail("declare dlq failed: %w", err)
	}
	if err := ch.QueueBind(c.cfg.DLQ, "#", c.cfg.DLX, false, nil); err != nil {
		return fail("bind dlq failed: %w", err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fail("declare exchange failed: %w", err)
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange": c.cfg.DLX,
	})
	if err != nil {
		return fail("declare queue failed: %w", err)
	}
	for _, key := range c.bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			return fail("bind queue failed: %w", fmt.Errorf("key %s: %w", key, err))
		}
	}

	prefetch := c.cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 8
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fail("set qos failed: %w", err)
	}

	c.conn = conn
	c.ch = ch
	c.log.Info("mq_connected", zap.Strings("bindings", c.bindings), zap.Int("prefetch", prefetch))
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Run consumes until ctx is cancelled (returning nil) or the broker closes the
// channel (returning ErrDeliveriesClosed).
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}
	return c.consume(ctx, msgs)
}

func (c *Consumer) consume(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.dispatch(ctx, d)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, d amqp.Delivery) {
	err := c.h.Handle(ctx, d.RoutingKey, d.Body)
	if err == nil {
		_ = d.Ack(false)
		return
	}

	var de *events.DecodeError
	if errors.As(err, &de) {
		c.log.Error("mq_message_dead_lettered",
			zap.String("routing_key", d.RoutingKey),
			zap.String("message_id", d.MessageId),
			zap.Error(err),
		)
		_ = d.Nack(false, false)
		return
	}

	c.log.Warn("mq_message_requeued",
		zap.String("routing_key", d.RoutingKey),
		zap.String("message_id", d.MessageId),
		zap.Error(err),
	)
	_ = d.Nack(false, true)
}
