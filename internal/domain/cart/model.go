package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not in cart")
)

// Cart is the per-user shopping cart. One cart per user; it is created
// lazily on first access and survives checkout (emptied, not deleted).
type Cart struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	UserID    uuid.UUID   `db:"user_id" json:"userId"`
	Items     []*CartItem `json:"items"`
	Subtotal  float64     `db:"subtotal" json:"subtotal"`
	Total     float64     `db:"total" json:"total"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
}

// CartItem is one product line. Price is the unit price snapshotted when
// the item was last added.
type CartItem struct {
	ID        uuid.UUID    `db:"id" json:"id"`
	CartID    uuid.UUID    `db:"cart_id" json:"-"`
	ProductID uuid.UUID    `db:"product_id" json:"productId"`
	Quantity  int          `db:"quantity" json:"quantity"`
	Price     float64      `db:"price" json:"price"`
	Product   *ItemProduct `json:"product,omitempty"`
}

// ItemProduct is the product summary resolved onto each cart line.
type ItemProduct struct {
	Name                 string   `json:"name"`
	Slug                 string   `json:"slug"`
	Images               []string `json:"images"`
	Price                float64  `json:"price"`
	StockQuantity        int      `json:"stockQuantity"`
	PrescriptionRequired bool     `json:"prescriptionRequired"`
}

// Recompute refreshes the derived totals from the item lines.
func (c *Cart) Recompute() {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.Price * float64(item.Quantity)
	}
	c.Subtotal = subtotal
	c.Total = subtotal
}

// Item returns the line for productID, or nil.
func (c *Cart) Item(productID uuid.UUID) *CartItem {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item
		}
	}
	return nil
}
