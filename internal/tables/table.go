package tables

import (
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/pkg/enums/tablestatus"
)

type Table struct {
	ID           uuid.UUID `json:"id" bson:"_id"`
	RestaurantID uuid.UUID `json:"restaurantId" bson:"restaurant_id"`
	Name         string    `json:"name" bson:"name"`
	Status       string    `json:"status" bson:"status"`
	Capacity     int       `json:"capacity" bson:"capacity"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
	UpdatedBy    string    `json:"updatedBy,omitempty" bson:"updated_by,omitempty"`
}

func NewTable() *Table {
	return &Table{
		ID:     uuid.New(),
		Status: tablestatus.Statuses.Available.Code(),
	}
}

func (t *Table) GetID() uuid.UUID {
	return t.ID
}

func (t *Table) ResourceType() string {
	return "table"
}

func (t *Table) EnsureID() {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
}

func (t *Table) BeforeCreate() {
	t.EnsureID()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
}

func (t *Table) BeforeUpdate() {
	t.UpdatedAt = time.Now()
}

func (t *Table) IsAvailable() bool {
	return t.Status == tablestatus.Statuses.Available.Code()
}

// SetStatus changes the status and returns the previous one.
func (t *Table) SetStatus(status, by string) string {
	previous := t.Status
	t.Status = status
	t.UpdatedBy = by
	t.BeforeUpdate()
	return previous
}
