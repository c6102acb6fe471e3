package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/TemirB/order-pipeline/internal/domain"
)

//go:generate mockgen -source notify.go -destination=notify_mock_test.go -package=notify

// Notifier delivers one created order to the notification collaborator.
type Notifier interface {
	Notify(ctx context.Context, order domain.Order) error
	Name() string
}

const EventOrderCreated = "order.created"

// Event is the envelope published on message transports.
type Event struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurredAt"`
	Order      domain.Order `json:"order"`
}

func NewEvent(order domain.Order, now time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       EventOrderCreated,
		OccurredAt: now.UTC(),
		Order:      order,
	}
}

// Nop accepts every notification and delivers nothing.
type Nop struct{}

func (Nop) Notify(context.Context, domain.Order) error { return nil }
func (Nop) Name() string                               { return "none" }
