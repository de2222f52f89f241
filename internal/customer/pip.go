package customer

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PIP (person in party) is a saved diner profile used to split a basket by person.
type PIP struct {
	ID         uuid.UUID `json:"id" bson:"_id"`
	CustomerID string    `json:"customerId" bson:"customer_id"`
	Name       string    `json:"name" bson:"name"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updated_at"`
}

func NewPIP() *PIP {
	return &PIP{ID: uuid.New()}
}

func (p *PIP) GetID() uuid.UUID {
	return p.ID
}

func (p *PIP) ResourceType() string {
	return "pip"
}

func (p *PIP) EnsureID() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
}

func (p *PIP) BeforeCreate() {
	p.EnsureID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
}

func (p *PIP) BeforeUpdate() {
	p.UpdatedAt = time.Now()
}

type PIPRepo interface {
	Create(ctx context.Context, p *PIP) error
	Get(ctx context.Context, id uuid.UUID) (*PIP, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*PIP, error)
	Save(ctx context.Context, p *PIP) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatePIPRequest struct {
	Name string `json:"name" validate:"notblank,max=80"`
}

type UpdatePIPRequest struct {
	PIPID uuid.UUID `json:"pipId" validate:"required"`
	Name  string    `json:"name" validate:"notblank,max=80"`
}

type DeletePIPRequest struct {
	PIPID uuid.UUID `json:"pipId" validate:"required"`
}
