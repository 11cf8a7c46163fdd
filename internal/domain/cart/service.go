package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medicart/medicart/internal/domain/catalog"
)

// ProductStore is the slice of the catalog the cart needs.
type ProductStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

type Service struct {
	carts    CartRepository
	products ProductStore
}

func NewService(carts CartRepository, products ProductStore) *Service {
	return &Service{carts: carts, products: products}
}

// Get returns the user's cart, creating an empty one on first access.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	c, err := s.carts.GetByUserID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		if err := s.carts.Create(ctx, &Cart{UserID: userID}); err != nil {
			return nil, err
		}
		return s.carts.GetByUserID(ctx, userID)
	}
	return c, err
}

// Add puts qty units of the product into the cart, merging into the
// existing line when the product is already there. The stock check guards
// the requested quantity only; the merged line total is validated against
// stock at checkout, where the decrement happens. On failure the cart is
// left untouched.
func (s *Service) Add(ctx context.Context, userID, productID uuid.UUID, qty int) (*Cart, error) {
	if qty < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, catalog.ErrNotFound
	}

	if !p.InStock(qty) {
		return nil, catalog.ErrInsufficientStock
	}

	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.carts.AddItem(ctx, &CartItem{
		CartID:    c.ID,
		ProductID: productID,
		Quantity:  qty,
		Price:     p.Price,
	}); err != nil {
		return nil, err
	}
	return s.refresh(ctx, userID)
}

// UpdateQuantity sets the line quantity outright.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*Cart, error) {
	if qty < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.InStock(qty) {
		return nil, catalog.ErrInsufficientStock
	}

	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.SetItemQuantity(ctx, c.ID, productID, qty); err != nil {
		return nil, err
	}
	return s.refresh(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, productID uuid.UUID) (*Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.RemoveItem(ctx, c.ID, productID); err != nil {
		return nil, err
	}
	return s.refresh(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.ClearItems(ctx, c.ID); err != nil {
		return nil, err
	}
	return s.refresh(ctx, userID)
}

// refresh reloads the cart and persists recomputed totals.
func (s *Service) refresh(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	c, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Recompute()
	if err := s.carts.UpdateTotals(ctx, c.ID, c.Subtotal, c.Total); err != nil {
		return nil, err
	}
	return c, nil
}
