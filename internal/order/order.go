package order

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending = "pending"
	PaymentUnpaid = "unpaid"
)

type Order struct {
	ID            uuid.UUID   `json:"id" bson:"_id"`
	OrderID       string      `json:"orderId" bson:"order_id"`
	CustomerID    string      `json:"customerId" bson:"customer_id"`
	RestaurantID  uuid.UUID   `json:"restaurantId" bson:"restaurant_id"`
	TableNumber   string      `json:"tableNumber,omitempty" bson:"table_number,omitempty"`
	Items         []OrderItem `json:"items" bson:"items"`
	TotalPrice    float64     `json:"totalPrice" bson:"total_price"`
	OrderStatus   string      `json:"orderStatus" bson:"order_status"`
	PaymentStatus string      `json:"paymentStatus" bson:"payment_status"`
	Timestamp     time.Time   `json:"timestamp" bson:"timestamp"`
}

type OrderItem struct {
	BasketItemID        string  `json:"basketItemId,omitempty" bson:"basket_item_id,omitempty"`
	DishID              string  `json:"dishId" bson:"dish_id" validate:"notblank"`
	Name                string  `json:"name" bson:"name" validate:"notblank,max=120"`
	Price               float64 `json:"price" bson:"price" validate:"min=0"`
	Quantity            int     `json:"quantity" bson:"quantity" validate:"min=1"`
	PIPName             string  `json:"pipName,omitempty" bson:"pip_name,omitempty"`
	SpecialInstructions string  `json:"specialInstructions,omitempty" bson:"special_instructions,omitempty" validate:"max=500"`
}

func NewOrder() *Order {
	return &Order{
		ID:            uuid.New(),
		OrderStatus:   StatusPending,
		PaymentStatus: PaymentUnpaid,
	}
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "order"
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	if o.Timestamp.IsZero() {
		o.Timestamp = time.Now()
	}
}
