package review

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/medicart/medicart/internal/domain/catalog"
)

type mockReviewRepo struct {
	reviews map[uuid.UUID]*Review
	authors map[uuid.UUID]Author
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{
		reviews: make(map[uuid.UUID]*Review),
		authors: make(map[uuid.UUID]Author),
	}
}

func (m *mockReviewRepo) copyOf(rv *Review) *Review {
	cp := *rv
	if a, ok := m.authors[rv.UserID]; ok {
		cp.Author = &a
	}
	return &cp
}

func (m *mockReviewRepo) Create(_ context.Context, rv *Review) error {
	for _, existing := range m.reviews {
		if existing.UserID == rv.UserID && existing.ProductID == rv.ProductID {
			return ErrAlreadyReviewed
		}
	}
	rv.ID = uuid.New()
	rv.CreatedAt = time.Now()
	rv.UpdatedAt = rv.CreatedAt
	cp := *rv
	m.reviews[rv.ID] = &cp
	return nil
}

func (m *mockReviewRepo) GetByID(_ context.Context, id uuid.UUID) (*Review, error) {
	rv, ok := m.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.copyOf(rv), nil
}

func (m *mockReviewRepo) Update(_ context.Context, rv *Review) error {
	existing, ok := m.reviews[rv.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Rating = rv.Rating
	existing.Title = rv.Title
	existing.Comment = rv.Comment
	existing.UpdatedAt = time.Now()
	return nil
}

func (m *mockReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

func (m *mockReviewRepo) Exists(_ context.Context, userID, productID uuid.UUID) (bool, error) {
	for _, rv := range m.reviews {
		if rv.UserID == userID && rv.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReviewRepo) collect(match func(*Review) bool, limit, offset int) ([]*Review, int) {
	var all []*Review
	for _, rv := range m.reviews {
		if match(rv) {
			all = append(all, m.copyOf(rv))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if offset >= total {
		return nil, total
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total
}

func (m *mockReviewRepo) ListByProduct(_ context.Context, productID uuid.UUID, verifiedOnly bool, limit, offset int) ([]*Review, int, error) {
	items, total := m.collect(func(rv *Review) bool {
		return rv.ProductID == productID && (!verifiedOnly || rv.IsVerified)
	}, limit, offset)
	return items, total, nil
}

func (m *mockReviewRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*Review, int, error) {
	items, total := m.collect(func(rv *Review) bool { return rv.UserID == userID }, limit, offset)
	return items, total, nil
}

func (m *mockReviewRepo) List(_ context.Context, verified *bool, limit, offset int) ([]*Review, int, error) {
	items, total := m.collect(func(rv *Review) bool {
		return verified == nil || rv.IsVerified == *verified
	}, limit, offset)
	return items, total, nil
}

func (m *mockReviewRepo) SetVerified(_ context.Context, id uuid.UUID, verified bool) error {
	rv, ok := m.reviews[id]
	if !ok {
		return ErrNotFound
	}
	rv.IsVerified = verified
	return nil
}

func (m *mockReviewRepo) RatingStats(_ context.Context, productID uuid.UUID) (float64, int, error) {
	sum, count := 0, 0
	for _, rv := range m.reviews {
		if rv.ProductID == productID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type mockProductStore struct {
	products map[uuid.UUID]*catalog.Product
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{products: make(map[uuid.UUID]*catalog.Product)}
}

func (m *mockProductStore) add(name string) *catalog.Product {
	p := &catalog.Product{ID: uuid.New(), Name: name, IsActive: true}
	m.products[p.ID] = p
	return p
}

func (m *mockProductStore) GetByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductStore) UpdateRating(_ context.Context, id uuid.UUID, rating float64, count int) error {
	p, ok := m.products[id]
	if !ok {
		return catalog.ErrNotFound
	}
	p.AverageRating = rating
	p.TotalReviews = count
	return nil
}

type mockTx struct{}

func (mockTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
