package review

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/medicart/medicart/internal/domain/catalog"
)

func newFixture() (*Service, *mockReviewRepo, *mockProductStore) {
	reviews := newMockReviewRepo()
	products := newMockProductStore()
	svc := NewService(reviews, products, mockTx{})
	return svc, reviews, products
}

func TestCreate_RecomputesProductRating(t *testing.T) {
	svc, _, products := newFixture()
	ctx := context.Background()
	p := products.add("Vitamin D3 1000IU")

	alice, bob := uuid.New(), uuid.New()
	if _, err := svc.Create(ctx, alice, CreateInput{ProductID: p.ID, Rating: 4, Title: "Good"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := svc.Create(ctx, bob, CreateInput{ProductID: p.ID, Rating: 5, Title: "Great"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got := products.products[p.ID]
	if got.AverageRating != 4.5 || got.TotalReviews != 2 {
		t.Errorf("rating = %v/%d, want 4.5/2", got.AverageRating, got.TotalReviews)
	}
}

func TestCreate_RoundsToOneDecimal(t *testing.T) {
	svc, _, products := newFixture()
	ctx := context.Background()
	p := products.add("Omega-3 Fish Oil")

	// 3+4+4 = 11/3 = 3.666..., stored as 3.7.
	for _, rating := range []int{3, 4, 4} {
		if _, err := svc.Create(ctx, uuid.New(), CreateInput{ProductID: p.ID, Rating: rating}); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	got := products.products[p.ID]
	if got.AverageRating != 3.7 {
		t.Errorf("AverageRating = %v, want 3.7", got.AverageRating)
	}
}

func TestCreate_OneReviewPerUserPerProduct(t *testing.T) {
	svc, _, products := newFixture()
	ctx := context.Background()
	p := products.add("Ibuprofen 200mg")
	userID := uuid.New()

	if _, err := svc.Create(ctx, userID, CreateInput{ProductID: p.ID, Rating: 5}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	_, err := svc.Create(ctx, userID, CreateInput{ProductID: p.ID, Rating: 3})
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Errorf("Create() error = %v, want ErrAlreadyReviewed", err)
	}
}

func TestCreate_RejectsOutOfRangeRating(t *testing.T) {
	svc, _, products := newFixture()
	ctx := context.Background()
	p := products.add("Aspirin 100mg")

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(ctx, uuid.New(), CreateInput{ProductID: p.ID, Rating: rating})
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("Create(rating=%d) error = %v, want ErrInvalidRating", rating, err)
		}
	}
}

func TestCreate_UnknownProduct(t *testing.T) {
	svc, _, _ := newFixture()
	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{ProductID: uuid.New(), Rating: 4})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("Create() error = %v, want catalog.ErrNotFound", err)
	}
}

func TestUpdate_OwnerOnly(t *testing.T) {
	svc, _, products := newFixture()
	ctx := context.Background()
	p := products.add("Cetirizine 10mg")
	owner := uuid.New()

	rv, err := svc.Create(ctx, owner, CreateInput{ProductID: p.ID, Rating: 3})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	_, err = svc.Update(ctx, uuid.New(), rv.ID, UpdateInput{Rating: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() by stranger error = %v, want ErrNotFound", err)
	}

	updated, err := svc.Update(ctx, owner, rv.ID, UpdateInput{Rating: 5, Title: "Changed my mind"})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Rating != 5 || updated.Title != "Changed my mind" {
		t.Errorf("updated review = %d %q", updated.Rating, updated.Title)
	}
	if got := products.products[p.ID].AverageRating; got != 5 {
		t.Errorf("AverageRating after update = %v, want 5", got)
	}
}

func TestDelete_LastReviewResetsRating(t *testing.T) {
	svc, _, products := newFixture()
	ctx := context.Background()
	p := products.add("Loratadine 10mg")
	owner := uuid.New()

	rv, err := svc.Create(ctx, owner, CreateInput{ProductID: p.ID, Rating: 4})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := svc.Delete(ctx, owner, rv.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	got := products.products[p.ID]
	if got.AverageRating != 0 || got.TotalReviews != 0 {
		t.Errorf("rating after last delete = %v/%d, want 0/0", got.AverageRating, got.TotalReviews)
	}
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc, _, products := newFixture()
	ctx := context.Background()
	p := products.add("Paracetamol 500mg")
	owner := uuid.New()

	rv, err := svc.Create(ctx, owner, CreateInput{ProductID: p.ID, Rating: 4})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := svc.Delete(ctx, uuid.New(), rv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() by stranger error = %v, want ErrNotFound", err)
	}
}

func TestListByProduct_VerifiedOnly(t *testing.T) {
	svc, reviews, products := newFixture()
	ctx := context.Background()
	p := products.add("Amoxicillin 250mg")

	rv, err := svc.Create(ctx, uuid.New(), CreateInput{ProductID: p.ID, Rating: 5})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := svc.Create(ctx, uuid.New(), CreateInput{ProductID: p.ID, Rating: 2}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := reviews.SetVerified(ctx, rv.ID, true); err != nil {
		t.Fatalf("SetVerified() error: %v", err)
	}

	items, total, err := svc.ListByProduct(ctx, p.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListByProduct() error: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != rv.ID {
		t.Errorf("ListByProduct() = %d items (total %d), want only the verified one", len(items), total)
	}
}

func TestVerify(t *testing.T) {
	svc, _, products := newFixture()
	ctx := context.Background()
	p := products.add("Zinc Supplement")

	rv, err := svc.Create(ctx, uuid.New(), CreateInput{ProductID: p.ID, Rating: 4})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	verified, err := svc.Verify(ctx, rv.ID, true)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if !verified.IsVerified {
		t.Error("review not marked verified")
	}
}
