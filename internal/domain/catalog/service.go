package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	categories CategoryRepository
	products   ProductRepository
}

func NewService(categories CategoryRepository, products ProductRepository) *Service {
	return &Service{categories: categories, products: products}
}

// -- Categories --

func (s *Service) CreateCategory(ctx context.Context, c *Category) error {
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	c.Slug = Slugify(c.Name)
	taken, err := s.categories.SlugExists(ctx, c.Slug)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	if c.ParentID != nil {
		if _, err := s.categories.GetByID(ctx, *c.ParentID); err != nil {
			return fmt.Errorf("parent category: %w", err)
		}
	}
	return s.categories.Create(ctx, c)
}

// maxCategoryDepth bounds the parent-chain walk so corrupted data cannot
// spin the cycle check forever.
const maxCategoryDepth = 100

// UpdateCategory rejects any parent assignment whose chain would loop
// back to the category itself. The slug is never recomputed on rename.
func (s *Service) UpdateCategory(ctx context.Context, c *Category) error {
	existing, err := s.categories.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	c.Slug = existing.Slug

	if c.ParentID != nil {
		if *c.ParentID == c.ID {
			return ErrCategoryCycle
		}
		cursor := *c.ParentID
		for i := 0; i < maxCategoryDepth; i++ {
			parent, err := s.categories.GetByID(ctx, cursor)
			if err != nil {
				return fmt.Errorf("parent category: %w", err)
			}
			if parent.ParentID == nil {
				break
			}
			if *parent.ParentID == c.ID {
				return ErrCategoryCycle
			}
			cursor = *parent.ParentID
		}
	}

	return s.categories.Update(ctx, c)
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categories.Delete(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, activeOnly bool) ([]*Category, error) {
	return s.categories.List(ctx, activeOnly)
}

func (s *Service) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.categories.GetBySlug(ctx, slug)
}

// -- Products --

func (s *Service) CreateProduct(ctx context.Context, p *Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	p.Slug = Slugify(p.Name)
	taken, err := s.products.SlugExists(ctx, p.Slug)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return s.products.Create(ctx, p)
}

// UniqueSlug derives a slug from name, appending -1, -2, ... until it is
// free. Used by bulk generation, where name collisions are expected.
func (s *Service) UniqueSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	slug := base
	for i := 1; ; i++ {
		taken, err := s.products.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *Service) UpdateProduct(ctx context.Context, p *Product) error {
	existing, err := s.products.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	// Slug and rating fields are not client-writable.
	p.Slug = existing.Slug
	p.AverageRating = existing.AverageRating
	p.TotalReviews = existing.TotalReviews
	if p.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return s.products.Update(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.products.GetBySlug(ctx, slug, true)
}

// ListProducts resolves the category filter (slug or id) before delegating
// to the repository.
func (s *Service) ListProducts(ctx context.Context, f Filter, limit, offset int) ([]*Product, int, error) {
	if f.Category != "" && f.CategoryID == nil {
		if id, err := uuid.Parse(f.Category); err == nil {
			f.CategoryID = &id
		} else {
			cat, err := s.categories.GetBySlug(ctx, f.Category)
			if err != nil {
				return nil, 0, fmt.Errorf("category filter: %w", err)
			}
			f.CategoryID = &cat.ID
		}
	}
	return s.products.List(ctx, f, limit, offset)
}

func (s *Service) FeaturedProducts(ctx context.Context, limit int) ([]*Product, error) {
	items, _, err := s.products.List(ctx, Filter{Featured: true}, limit, 0)
	return items, err
}

func (s *Service) OnSaleProducts(ctx context.Context, limit int) ([]*Product, error) {
	items, _, err := s.products.List(ctx, Filter{OnSale: true}, limit, 0)
	return items, err
}

func (s *Service) SearchProducts(ctx context.Context, query string, limit, offset int) ([]*Product, int, error) {
	return s.products.List(ctx, Filter{Search: query}, limit, offset)
}
