package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventOrderPlaced        EventType = "order.placed"
	EventOrderCancelled     EventType = "order.cancelled"
	EventOrderStatusChanged EventType = "order.status_changed"
)

// Event is an outbox row. ID is assigned by the store and orders
// publication.
type Event struct {
	ID          int64
	OrderID     string
	Type        EventType
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

type eventLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type eventPayload struct {
	OrderID        string          `json:"order_id"`
	CustomerID     string          `json:"customer_id"`
	Status         Status          `json:"status"`
	PreviousStatus Status          `json:"previous_status,omitempty"`
	Total          decimal.Decimal `json:"total"`
	Items          []eventLine     `json:"items"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// NewEvent snapshots o for an event of type t. prev is the status before
// the change, empty for a new order.
func NewEvent(t EventType, o Order, prev Status, at time.Time) (Event, error) {
	lines := make([]eventLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, eventLine{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}

	body, err := json.Marshal(eventPayload{
		OrderID:        o.ID,
		CustomerID:     o.CustomerID,
		Status:         o.Status,
		PreviousStatus: prev,
		Total:          o.Total(),
		Items:          lines,
		OccurredAt:     at.UTC(),
	})
	if err != nil {
		return Event{}, err
	}

	return Event{OrderID: o.ID, Type: t, Payload: body, CreatedAt: at.UTC()}, nil
}
