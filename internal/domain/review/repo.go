package review

import (
	"context"

	"github.com/google/uuid"
)

type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, verifiedOnly bool, limit, offset int) ([]*Review, int, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Review, int, error)
	// List is the admin view; verified filters when non-nil.
	List(ctx context.Context, verified *bool, limit, offset int) ([]*Review, int, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	// RatingStats returns the unrounded mean rating and review count for
	// a product; {0, 0} when no reviews exist.
	RatingStats(ctx context.Context, productID uuid.UUID) (float64, int, error)
}
