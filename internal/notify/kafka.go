package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/TemirB/order-pipeline/internal/domain"
)

type publisher interface {
	Publish(ctx context.Context, key string, value []byte, headers map[string]string) error
}

// KafkaNotifier publishes an order.created event keyed by order id.
type KafkaNotifier struct {
	pub publisher
	now func() time.Time
}

func NewKafkaNotifier(pub publisher) *KafkaNotifier {
	return &KafkaNotifier{pub: pub, now: time.Now}
}

func (n *KafkaNotifier) Name() string { return "kafka" }

func (n *KafkaNotifier) Notify(ctx context.Context, order domain.Order) error {
	ev := NewEvent(order, n.now())
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.pub.Publish(ctx, strconv.FormatInt(order.ID, 10), raw, map[string]string{
		"event-id":   ev.ID,
		"event-type": ev.Type,
	})
}
