package review

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/medicart/medicart/internal/domain/catalog"
)

// TxRunner executes fn inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProductStore is the slice of the catalog the review service needs.
type ProductStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64, count int) error
}

type Service struct {
	reviews  ReviewRepository
	products ProductStore
	tx       TxRunner
}

func NewService(reviews ReviewRepository, products ProductStore, tx TxRunner) *Service {
	return &Service{reviews: reviews, products: products, tx: tx}
}

type CreateInput struct {
	ProductID uuid.UUID `json:"productId"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
}

type UpdateInput struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// Create adds a review and folds it into the product's cached rating.
// One review per user per product.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	taken, err := s.reviews.Exists(ctx, userID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAlreadyReviewed
	}

	rv := &Review{
		UserID:    userID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Title:     in.Title,
		Comment:   in.Comment,
	}
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.reviews.Create(ctx, rv); err != nil {
			return err
		}
		return s.recomputeRating(ctx, in.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, rv.ID)
}

// Update edits the caller's own review and recomputes the product rating.
func (s *Service) Update(ctx context.Context, userID, reviewID uuid.UUID, in UpdateInput) (*Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rv.UserID != userID {
		return nil, ErrNotFound
	}

	rv.Rating = in.Rating
	rv.Title = in.Title
	rv.Comment = in.Comment
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.reviews.Update(ctx, rv); err != nil {
			return err
		}
		return s.recomputeRating(ctx, rv.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, reviewID)
}

// Delete removes the caller's own review and recomputes the product rating.
func (s *Service) Delete(ctx context.Context, userID, reviewID uuid.UUID) error {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != userID {
		return ErrNotFound
	}
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.reviews.Delete(ctx, reviewID); err != nil {
			return err
		}
		return s.recomputeRating(ctx, rv.ProductID)
	})
}

func (s *Service) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*Review, int, error) {
	return s.reviews.ListByProduct(ctx, productID, true, limit, offset)
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Review, int, error) {
	return s.reviews.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) AdminList(ctx context.Context, verified *bool, limit, offset int) ([]*Review, int, error) {
	return s.reviews.List(ctx, verified, limit, offset)
}

// Verify marks a review as a verified purchase.
func (s *Service) Verify(ctx context.Context, reviewID uuid.UUID, verified bool) (*Review, error) {
	if err := s.reviews.SetVerified(ctx, reviewID, verified); err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, reviewID)
}

// recomputeRating refreshes the product's cached average (rounded to one
// decimal place) and review count. A product with no reviews goes back
// to zero.
func (s *Service) recomputeRating(ctx context.Context, productID uuid.UUID) error {
	avg, count, err := s.reviews.RatingStats(ctx, productID)
	if err != nil {
		return err
	}
	rounded := math.Round(avg*10) / 10
	if err := s.products.UpdateRating(ctx, productID, rounded, count); err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	return nil
}
