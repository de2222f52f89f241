package event

import "time"

const (
	// KitchenSubjects matches every chef's queue subject.
	KitchenSubjects = "kitchen.>"

	KitchenBasketSentTopic        = "kitchen.basket.sent"
	KitchenItemStatusChangedTopic = "kitchen.item.status_changed"

	EventKitchenBasketSent        = "kitchen.basket.sent"
	EventKitchenItemStatusChanged = "kitchen.item.status_changed"
)

type KitchenEventMetadata struct {
	EventType    string    `json:"event_type"`
	OccurredAt   time.Time `json:"occurred_at"`
	RestaurantID string    `json:"restaurant_id"`
	TableNumber  string    `json:"table_number,omitempty"`
}

// KitchenItem is the denormalized view of a basket line shown to the chef.
type KitchenItem struct {
	BasketItemID        string `json:"basket_item_id"`
	DishID              string `json:"dish_id"`
	DishName            string `json:"dish_name"`
	Quantity            int    `json:"quantity"`
	PIPName             string `json:"pip_name,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
	ItemStatus          string `json:"item_status"`
}

type KitchenBasketSentEvent struct {
	KitchenEventMetadata
	UserID string        `json:"user_id"`
	Items  []KitchenItem `json:"items"`
}

type KitchenItemStatusChangedEvent struct {
	KitchenEventMetadata
	Item           KitchenItem `json:"item"`
	PreviousStatus string      `json:"previous_status"`
}
