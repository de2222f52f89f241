package restaurant

import (
	"time"

	"github.com/google/uuid"
)

type Restaurant struct {
	ID              uuid.UUID `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Number          string    `json:"restaurantNumber" bson:"restaurant_number"`
	OwnerID         string    `json:"ownerId" bson:"owner_id"`
	StripeAccountID string    `json:"stripeAccountId,omitempty" bson:"stripe_account_id,omitempty"`
	Address         string    `json:"address,omitempty" bson:"address,omitempty"`
	Timezone        string    `json:"timezone,omitempty" bson:"timezone,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updated_at"`
}

func NewRestaurant() *Restaurant {
	return &Restaurant{ID: uuid.New()}
}

func (r *Restaurant) GetID() uuid.UUID {
	return r.ID
}

func (r *Restaurant) ResourceType() string {
	return "restaurant"
}

func (r *Restaurant) EnsureID() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
}

func (r *Restaurant) BeforeCreate() {
	r.EnsureID()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
}

func (r *Restaurant) BeforeUpdate() {
	r.UpdatedAt = time.Now()
}

// Location returns the restaurant's timezone, or fallback when unset or unknown.
func (r *Restaurant) Location(fallback *time.Location) *time.Location {
	if r.Timezone != "" {
		if loc, err := time.LoadLocation(r.Timezone); err == nil {
			return loc
		}
	}
	if fallback == nil {
		return time.Local
	}
	return fallback
}

func (r *Restaurant) HasConnectedAccount() bool {
	return r.StripeAccountID != ""
}

const (
	RoleManager = "manager"
	RoleServer  = "server"
	RoleChef    = "chef"
	RoleHost    = "host"
)

type Employee struct {
	ID           uuid.UUID `json:"id" bson:"_id"`
	RestaurantID uuid.UUID `json:"restaurantId" bson:"restaurant_id"`
	UserID       string    `json:"userId" bson:"user_id"`
	Name         string    `json:"name" bson:"name"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

func NewEmployee() *Employee {
	return &Employee{ID: uuid.New()}
}

func (e *Employee) GetID() uuid.UUID {
	return e.ID
}

func (e *Employee) ResourceType() string {
	return "employee"
}

func (e *Employee) EnsureID() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
}

func (e *Employee) BeforeCreate() {
	e.EnsureID()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
}

func (e *Employee) BeforeUpdate() {
	e.UpdatedAt = time.Now()
}

func (e *Employee) IsManager() bool {
	return e.Role == RoleManager
}
