package cart

import (
	"context"

	"github.com/google/uuid"
)

type CartRepository interface {
	// GetByUserID loads the user's cart with item lines and product
	// summaries resolved. Returns ErrNotFound when no cart exists yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Create(ctx context.Context, c *Cart) error

	// AddItem inserts the line, or adds to its quantity when the product
	// is already in the cart.
	AddItem(ctx context.Context, item *CartItem) error
	// SetItemQuantity returns ErrItemNotFound when the product is not a
	// line in the cart.
	SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, qty int) error

	// RemoveItem drops the line if present. Removing an absent line is
	// a no-op, not an error.
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error
	UpdateTotals(ctx context.Context, cartID uuid.UUID, subtotal, total float64) error
}
