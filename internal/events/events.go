// Package events publishes order lifecycle notifications after the
// corresponding database write has committed.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	OrderPlaced        Type = "order.placed"
	OrderStatusChanged Type = "order.status_changed"
)

type Event struct {
	ID          string          `json:"event_id"`
	Type        Type            `json:"type"`
	OrderID     int             `json:"order_id"`
	UserID      int             `json:"user_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// New stamps an event with a fresh id and the current time.
func New(t Type, orderID, userID int, status string, total decimal.Decimal) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        t,
		OrderID:     orderID,
		UserID:      userID,
		Status:      status,
		TotalAmount: total,
		OccurredAt:  time.Now().UTC(),
	}
}

// Publisher delivers events to downstream consumers. Delivery is best effort:
// callers log failures and never undo the write that produced the event.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
