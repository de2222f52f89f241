package basket

import (
	"context"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/menu"
)

type BasketRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*BasketItem, error)
	ListUnsent(ctx context.Context, userID string, restaurantID uuid.UUID) ([]*BasketItem, error)
	// ListQueued returns sent lines of a restaurant that are not completed.
	ListQueued(ctx context.Context, restaurantID uuid.UUID) ([]*BasketItem, error)
	// Decrement lowers an unsent line's quantity by one when it is above one
	// and reports whether it did.
	Decrement(ctx context.Context, id uuid.UUID) (bool, error)
	Save(ctx context.Context, item *BasketItem) error
	Apply(ctx context.Context, batch *Batch) error
}

// MenuLookup resolves a dish against the restaurant's menu; nil means unknown.
type MenuLookup interface {
	Lookup(ctx context.Context, restaurantID, dishID uuid.UUID) (*menu.MenuItem, error)
}

// StaffAuthorizer decides whether a caller may act for a restaurant.
type StaffAuthorizer interface {
	RequireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error
}
