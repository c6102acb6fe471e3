package kafka

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes keyed messages to a single topic.
type Publisher struct {
	writer  Writer
	topic   string
	zlogger *zap.Logger
}

func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return newPublisher(w, topic, logger)
}

func newPublisher(w Writer, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer:  w,
		topic:   topic,
		zlogger: logger,
	}
}

func (p *Publisher) Topic() string { return p.topic }

func (p *Publisher) Publish(ctx context.Context, key string, value []byte, headers map[string]string) error {
	msg := kafkago.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, kafkago.Header{Key: k, Value: []byte(v)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", p.topic, err)
	}
	p.zlogger.Debug("kafka message written", zap.String("topic", p.topic), zap.String("key", key))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
