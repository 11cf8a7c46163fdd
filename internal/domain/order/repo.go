package order

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows admin order listings.
type ListFilter struct {
	Status        string
	PaymentStatus string
}

type OrderRepository interface {
	// Create inserts the order and its item lines.
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Order, int, error)
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	SetPrescriptionApproval(ctx context.Context, id uuid.UUID, approved bool, notes string) error
}
