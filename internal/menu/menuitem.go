package menu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MenuItem is a dish or drink offered by one restaurant.
type MenuItem struct {
	ID             uuid.UUID `json:"id" bson:"_id"`
	RestaurantID   uuid.UUID `json:"restaurantId" bson:"restaurant_id"`
	Name           string    `json:"name" bson:"name"`
	Price          float64   `json:"price" bson:"price"`
	Category       string    `json:"category" bson:"category"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty"`
	ImageURI       string    `json:"imageUri,omitempty" bson:"image_uri,omitempty"`
	IsDailySpecial bool      `json:"isDailySpecial" bson:"is_daily_special"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
	CreatedBy      string    `json:"createdBy" bson:"created_by"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updated_at"`
	UpdatedBy      string    `json:"updatedBy" bson:"updated_by"`
}

func NewMenuItem() *MenuItem {
	return &MenuItem{ID: uuid.New()}
}

func (m *MenuItem) GetID() uuid.UUID {
	return m.ID
}

func (m *MenuItem) ResourceType() string {
	return "menu-item"
}

func (m *MenuItem) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

func (m *MenuItem) BeforeCreate() {
	m.EnsureID()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
}

func (m *MenuItem) BeforeUpdate() {
	m.UpdatedAt = time.Now()
}

// Price accepts a JSON number or a numeric string such as "12.99".
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimPrefix(strings.TrimSpace(s), "$")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("price %q is not numeric", s)
		}
		*p = Price(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("price is not numeric")
	}
	*p = Price(f)
	return nil
}

// Valid reports whether the price is a finite, non-negative amount.
func (p Price) Valid() bool {
	f := float64(p)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}

// Rounded returns the price rounded to cents.
func (p Price) Rounded() float64 {
	return math.Round(float64(p)*100) / 100
}
