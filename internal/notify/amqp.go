package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/TemirB/order-pipeline/internal/domain"
)

type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPNotifier publishes order.created events to a durable RabbitMQ queue
// through the default exchange.
type AMQPNotifier struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel amqpChannel
	queue   string
	now     func() time.Time
	logger  *zap.Logger
}

// DialAMQP connects, opens a channel and declares the queue.
func DialAMQP(url, queue string, logger *zap.Logger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp declare %s: %w", queue, err)
	}
	logger.Info("rabbitmq connected", zap.String("queue", queue))

	n := newAMQPNotifier(ch, queue, logger)
	n.conn = conn
	return n, nil
}

func newAMQPNotifier(ch amqpChannel, queue string, logger *zap.Logger) *AMQPNotifier {
	return &AMQPNotifier{
		channel: ch,
		queue:   queue,
		now:     time.Now,
		logger:  logger,
	}
}

func (n *AMQPNotifier) Name() string { return "amqp" }

func (n *AMQPNotifier) Notify(ctx context.Context, order domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ev := NewEvent(order, n.now())
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	err = n.channel.Publish("", n.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         ev.Type,
		Timestamp:    ev.OccurredAt,
		Body:         raw,
	})
	if err != nil {
		return fmt.Errorf("amqp publish %s: %w", n.queue, err)
	}
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}
