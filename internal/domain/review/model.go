package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("product already reviewed by this user")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Review is one customer's rating of a product. A user may hold at most
// one review per product.
type Review struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"userId"`
	ProductID  uuid.UUID `db:"product_id" json:"productId"`
	Rating     int       `db:"rating" json:"rating"`
	Title      string    `db:"title" json:"title,omitempty"`
	Comment    string    `db:"comment" json:"comment,omitempty"`
	IsVerified bool      `db:"is_verified" json:"isVerified"`
	Author     *Author   `json:"user,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// Author is the reviewer summary resolved onto listings.
type Author struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
