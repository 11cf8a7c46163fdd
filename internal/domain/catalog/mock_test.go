package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type mockCategoryRepo struct {
	items map[uuid.UUID]*Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{items: make(map[uuid.UUID]*Category)}
}

func (m *mockCategoryRepo) Create(ctx context.Context, c *Category) error {
	c.ID = uuid.New()
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCategoryRepo) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	for _, c := range m.items {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockCategoryRepo) List(ctx context.Context, activeOnly bool) ([]*Category, error) {
	var out []*Category
	for _, c := range m.items {
		if activeOnly && !c.IsActive {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *Category) error {
	if _, ok := m.items[c.ID]; !ok {
		return ErrNotFound
	}
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockCategoryRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, c := range m.items {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type mockProductRepo struct {
	items map[uuid.UUID]*Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{items: make(map[uuid.UUID]*Product)}
}

func (m *mockProductRepo) Create(ctx context.Context, p *Product) error {
	p.ID = uuid.New()
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) GetBySlug(ctx context.Context, slug string, activeOnly bool) (*Product, error) {
	for _, p := range m.items {
		if p.Slug == slug && (!activeOnly || p.IsActive) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockProductRepo) List(ctx context.Context, f Filter, limit, offset int) ([]*Product, int, error) {
	var matched []*Product
	for _, p := range m.items {
		if !f.IncludeInactive && !p.IsActive {
			continue
		}
		if f.Featured && !p.IsFeatured {
			continue
		}
		if f.OnSale && !p.IsOnSale {
			continue
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	total := len(matched)
	if offset > total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *mockProductRepo) Update(ctx context.Context, p *Product) error {
	if _, ok := m.items[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockProductRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, p := range m.items {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	p, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	if p.StockQuantity < qty {
		return ErrInsufficientStock
	}
	p.StockQuantity -= qty
	return nil
}

func (m *mockProductRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	p, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	p.StockQuantity += qty
	return nil
}

func (m *mockProductRepo) UpdateRating(ctx context.Context, id uuid.UUID, average float64, total int) error {
	p, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	p.AverageRating = average
	p.TotalReviews = total
	return nil
}
