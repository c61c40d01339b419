package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bookstore-service/models"

	"github.com/google/uuid"
)

const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
)

// Publisher delivers a serialized event to a topic. The SNS client in
// pkg/aws and KafkaProducer both satisfy it.
type Publisher interface {
	Publish(ctx context.Context, topic string, message []byte) error
}

type OrderCreatedEvent struct {
	EventType string         `json:"event_type"`
	OrderID   uuid.UUID      `json:"order_id"`
	UserID    uuid.UUID      `json:"user_id"`
	Total     string         `json:"total"`
	ItemCount int            `json:"item_count"`
	Items     []OrderLineRef `json:"items"`
	Timestamp time.Time      `json:"timestamp"`
}

type OrderLineRef struct {
	BookID   uuid.UUID `json:"book_id"`
	Quantity int       `json:"quantity"`
	Price    string    `json:"price"`
}

type OrderStatusChangedEvent struct {
	EventType string             `json:"event_type"`
	OrderID   uuid.UUID          `json:"order_id"`
	Status    models.OrderStatus `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
}

// NewOrderCreated builds the payload published after a checkout commits.
func NewOrderCreated(order *models.Order, at time.Time) OrderCreatedEvent {
	items := make([]OrderLineRef, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, OrderLineRef{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    models.MoneyString(item.Price),
		})
	}
	return OrderCreatedEvent{
		EventType: OrderCreated,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     models.MoneyString(order.Total),
		ItemCount: len(items),
		Items:     items,
		Timestamp: at,
	}
}

func NewOrderStatusChanged(orderID uuid.UUID, status models.OrderStatus, at time.Time) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		EventType: OrderStatusChanged,
		OrderID:   orderID,
		Status:    status,
		Timestamp: at,
	}
}

// Emitter sends events to every publisher it was given, each with its own
// destination (an SNS topic ARN, a Kafka topic name).
type Emitter struct {
	targets []target
}

type target struct {
	publisher Publisher
	topic     string
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// To adds a destination. Publishers without a topic are ignored so optional
// transports can be passed through unconditionally.
func (e *Emitter) To(publisher Publisher, topic string) *Emitter {
	if publisher == nil || topic == "" {
		return e
	}
	e.targets = append(e.targets, target{publisher: publisher, topic: topic})
	return e
}

func (e *Emitter) Enabled() bool {
	return e != nil && len(e.targets) > 0
}

// Emit marshals event to JSON and publishes it to all destinations. Every
// destination is attempted; the first failure is returned.
func (e *Emitter) Emit(ctx context.Context, event interface{}) error {
	if !e.Enabled() {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	var firstErr error
	for _, t := range e.targets {
		if err := t.publisher.Publish(ctx, t.topic, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
