package basket

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/pkg/enums/itemstatus"
	"github.com/appetiteclub/dinein/pkg/event"
)

// Dish is the menu snapshot stored on a basket line.
type Dish struct {
	ID    string  `json:"id" bson:"id" validate:"notblank"`
	Name  string  `json:"name" bson:"name" validate:"max=120"`
	Price float64 `json:"price" bson:"price" validate:"min=0"`
}

// PIPRef names the person in the party a line is for.
type PIPRef struct {
	ID   string `json:"id" bson:"id" validate:"notblank"`
	Name string `json:"name" bson:"name" validate:"max=80"`
}

type BasketItem struct {
	ID                  uuid.UUID  `json:"id" bson:"_id"`
	UserID              string     `json:"userId" bson:"user_id"`
	RestaurantID        uuid.UUID  `json:"restaurantId" bson:"restaurant_id"`
	Dish                Dish       `json:"dish" bson:"dish"`
	Quantity            int        `json:"quantity" bson:"quantity"`
	SpecialInstructions string     `json:"specialInstructions,omitempty" bson:"special_instructions,omitempty"`
	PIP                 PIPRef     `json:"pip" bson:"pip"`
	SentToChefQ         bool       `json:"sentToChefQ" bson:"sent_to_chef_q"`
	ItemStatus          string     `json:"itemStatus,omitempty" bson:"item_status,omitempty"`
	TableNumber         string     `json:"tableNumber,omitempty" bson:"table_number,omitempty"`
	Discount            float64    `json:"discount,omitempty" bson:"discount,omitempty"`
	CreatedAt           time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" bson:"updated_at"`
	SentAt              *time.Time `json:"sentAt,omitempty" bson:"sent_at,omitempty"`
}

func NewBasketItem() *BasketItem {
	return &BasketItem{ID: uuid.New(), Quantity: 1}
}

func (b *BasketItem) GetID() uuid.UUID {
	return b.ID
}

func (b *BasketItem) ResourceType() string {
	return "basket_item"
}

func (b *BasketItem) EnsureID() {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
}

func (b *BasketItem) BeforeCreate(now time.Time) {
	b.EnsureID()
	b.CreatedAt = now
	b.UpdatedAt = now
}

func (b *BasketItem) BeforeUpdate(now time.Time) {
	b.UpdatedAt = now
}

// BelongsTo reports whether the line is in userID's basket at restaurantID.
func (b *BasketItem) BelongsTo(userID string, restaurantID uuid.UUID) bool {
	return b.UserID == userID && b.RestaurantID == restaurantID
}

// LineTotal is the undiscounted price of the line.
func (b *BasketItem) LineTotal() float64 {
	return math.Round(b.Dish.Price*float64(b.Quantity)*100) / 100
}

func (b *BasketItem) Status() itemstatus.Status {
	if s := itemstatus.ByName(b.ItemStatus); s != nil {
		return *s
	}
	return itemstatus.Statuses.Pending
}

func (b *BasketItem) KitchenItem() event.KitchenItem {
	return event.KitchenItem{
		BasketItemID:        b.ID.String(),
		DishID:              b.Dish.ID,
		DishName:            b.Dish.Name,
		Quantity:            b.Quantity,
		PIPName:             b.PIP.Name,
		SpecialInstructions: b.SpecialInstructions,
		ItemStatus:          b.ItemStatus,
	}
}
