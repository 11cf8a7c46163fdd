package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medicart/medicart/internal/domain/cart"
	"github.com/medicart/medicart/internal/domain/catalog"
)

// TxRunner runs a function inside a database transaction. The repositories
// join the transaction through the context.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProductStore is the slice of the catalog the order workflow needs.
type ProductStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

// CartStore is the slice of the cart domain the order workflow needs.
type CartStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
	ClearItems(ctx context.Context, cartID uuid.UUID) error
	UpdateTotals(ctx context.Context, cartID uuid.UUID, subtotal, total float64) error
}

type Service struct {
	orders   OrderRepository
	carts    CartStore
	products ProductStore
	tx       TxRunner
}

func NewService(orders OrderRepository, carts CartStore, products ProductStore, tx TxRunner) *Service {
	return &Service{orders: orders, carts: carts, products: products, tx: tx}
}

type PlaceInput struct {
	PaymentMethod     string   `json:"paymentMethod"`
	ShippingAddress   Address  `json:"shippingAddress"`
	BillingAddress    *Address `json:"billingAddress"`
	Notes             string   `json:"notes"`
	PrescriptionImage string   `json:"prescriptionImage"`
}

// Place converts the user's cart into an order. Every step runs inside one
// transaction: order insert, per-line stock decrement, cart clear. If any
// line cannot take the stock, the whole placement rolls back and neither
// order, stock, nor cart change. Line prices are re-read from the catalog
// at placement time, so the order subtotal follows the current price when
// it has drifted from the carted price.
func (s *Service) Place(ctx context.Context, userID uuid.UUID, in PlaceInput) (*Order, error) {
	if !paymentMethods[in.PaymentMethod] {
		return nil, fmt.Errorf("invalid payment method: %q", in.PaymentMethod)
	}
	if in.ShippingAddress.Street == "" || in.ShippingAddress.City == "" {
		return nil, fmt.Errorf("shipping address is incomplete")
	}

	var placed *Order
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.carts.GetByUserID(ctx, userID)
		if errors.Is(err, cart.ErrNotFound) {
			return ErrEmptyCart
		}
		if err != nil {
			return err
		}
		if len(c.Items) == 0 {
			return ErrEmptyCart
		}

		o := &Order{
			UserID:            userID,
			Status:            StatusPending,
			PaymentStatus:     PaymentPending,
			PaymentMethod:     in.PaymentMethod,
			ShippingAddress:   in.ShippingAddress,
			BillingAddress:    in.BillingAddress,
			TrackingNumber:    NewTrackingNumber(time.Now()),
			Notes:             in.Notes,
			PrescriptionImage: in.PrescriptionImage,
		}

		for _, line := range c.Items {
			p, err := s.products.GetByID(ctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("product %s: %w", line.ProductID, err)
			}
			if !p.InStock(line.Quantity) {
				return fmt.Errorf("%s: %w", p.Name, catalog.ErrInsufficientStock)
			}
			if p.PrescriptionRequired {
				o.PrescriptionRequired = true
			}
			o.Items = append(o.Items, &OrderItem{
				ProductID: p.ID,
				Quantity:  line.Quantity,
				Price:     p.Price,
				Total:     p.Price * float64(line.Quantity),
			})
			o.Subtotal += p.Price * float64(line.Quantity)
		}
		o.Total = o.Subtotal + o.Tax + o.Shipping

		if err := s.orders.Create(ctx, o); err != nil {
			return err
		}

		for _, item := range o.Items {
			if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.carts.ClearItems(ctx, c.ID); err != nil {
			return err
		}
		if err := s.carts.UpdateTotals(ctx, c.ID, 0, 0); err != nil {
			return err
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// Cancel lets the owner cancel a pending order, restoring the stock the
// placement took. Any other status is rejected.
func (s *Service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	var cancelled *Order
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return ErrNotFound
		}
		if o.Status != StatusPending {
			return ErrInvalidState
		}

		if err := s.orders.UpdateStatus(ctx, o.ID, StatusCancelled); err != nil {
			return err
		}
		for _, item := range o.Items {
			if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		o.Status = StatusCancelled
		cancelled = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// Get returns an order if the caller owns it; admins see all orders.
func (s *Service) Get(ctx context.Context, callerID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != callerID {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Order, int, error) {
	return s.orders.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Order, int, error) {
	return s.orders.List(ctx, f, limit, offset)
}

// UpdateStatus applies an admin status change, validated against the
// order state machine. Cancellation through this path restores stock,
// the same inverse operation as a customer cancel.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*Order, error) {
	var updated *Order
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !CanTransition(o.Status, status) {
			return ErrInvalidState
		}

		if err := s.orders.UpdateStatus(ctx, o.ID, status); err != nil {
			return err
		}
		if status == StatusCancelled {
			for _, item := range o.Items {
				if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		o.Status = status
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ApprovePrescription records the pharmacist's decision on an order's
// uploaded prescription.
func (s *Service) ApprovePrescription(ctx context.Context, orderID uuid.UUID, approved bool, notes string) (*Order, error) {
	if err := s.orders.SetPrescriptionApproval(ctx, orderID, approved, notes); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, orderID)
}
