package event

import "time"

const (
	OrdersCreatedTopic = "orders.created"
	EventOrderCreated  = "order.created"
)

// OrderCreatedEvent is published once an order has been persisted.
type OrderCreatedEvent struct {
	EventType    string    `json:"event_type"`
	OccurredAt   time.Time `json:"occurred_at"`
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	RestaurantID string    `json:"restaurant_id"`
	CustomerID   string    `json:"customer_id"`
	TableNumber  string    `json:"table_number,omitempty"`
	ItemCount    int       `json:"item_count"`
	TotalPrice   float64   `json:"total_price"`
}
