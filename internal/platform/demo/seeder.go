package demo

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/medicart/medicart/internal/domain/catalog"
	"github.com/medicart/medicart/internal/domain/identity"
	"github.com/medicart/medicart/internal/domain/order"
	"github.com/medicart/medicart/internal/domain/review"
	"github.com/medicart/medicart/internal/platform/auth"
)

// demoPassword is the login password for every generated customer.
const demoPassword = "password123"

// MaxQuantity caps a single generation request.
const MaxQuantity = 100

// Seeder writes synthetic data through the domain repositories so
// generated rows satisfy the same constraints as real ones.
type Seeder struct {
	pool       *pgxpool.Pool
	users      identity.UserRepository
	categories catalog.CategoryRepository
	products   catalog.ProductRepository
	orders     order.OrderRepository
	reviews    review.ReviewRepository
	catalogSvc *catalog.Service
	hasher     *auth.Hasher
	gen        *Generator
	logger     zerolog.Logger
}

func NewSeeder(
	pool *pgxpool.Pool,
	users identity.UserRepository,
	categories catalog.CategoryRepository,
	products catalog.ProductRepository,
	orders order.OrderRepository,
	reviews review.ReviewRepository,
	catalogSvc *catalog.Service,
	hasher *auth.Hasher,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		pool:       pool,
		users:      users,
		categories: categories,
		products:   products,
		orders:     orders,
		reviews:    reviews,
		catalogSvc: catalogSvc,
		hasher:     hasher,
		gen:        NewGenerator(0),
		logger:     logger,
	}
}

// GenerateUsers creates n synthetic customers. They all share one
// password so demo logins are possible.
func (s *Seeder) GenerateUsers(ctx context.Context, n int) (int, error) {
	hash, err := s.hasher.Hash(demoPassword)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := 0; i < n; i++ {
		u := s.gen.User()
		u.PasswordHash = hash
		if err := s.users.Create(ctx, u); err != nil {
			if errors.Is(err, identity.ErrEmailTaken) {
				continue
			}
			return created, err
		}
		created++
	}
	s.logger.Info().Int("count", created).Msg("generated demo users")
	return created, nil
}

// GenerateCategories creates up to n top-level categories from the pool,
// each with a handful of subcategories.
func (s *Seeder) GenerateCategories(ctx context.Context, n int) (int, error) {
	if n > len(categoryNames) {
		n = len(categoryNames)
	}

	created := 0
	for _, name := range s.gen.pickSome(categoryNames, n, n) {
		parent := s.gen.Category(name)
		if err := s.createCategory(ctx, parent); err != nil {
			return created, err
		}
		created++

		children := subcategoryNames[name]
		for _, childName := range s.gen.pickSome(children, 1, 3) {
			child := s.gen.Subcategory(childName, parent.ID)
			if err := s.createCategory(ctx, child); err != nil {
				return created, err
			}
			created++
		}
	}
	s.logger.Info().Int("count", created).Msg("generated demo categories")
	return created, nil
}

// createCategory inserts with a uniquified slug so repeated generation
// runs never collide.
func (s *Seeder) createCategory(ctx context.Context, c *catalog.Category) error {
	base := catalog.Slugify(c.Name)
	slug := base
	for i := 1; ; i++ {
		taken, err := s.categories.SlugExists(ctx, slug)
		if err != nil {
			return err
		}
		if !taken {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	c.Slug = slug
	return s.categories.Create(ctx, c)
}

// GenerateProducts creates n products spread over the existing
// categories. Categories must exist first.
func (s *Seeder) GenerateProducts(ctx context.Context, n int) (int, error) {
	cats, err := s.categories.List(ctx, false)
	if err != nil {
		return 0, err
	}
	if len(cats) == 0 {
		return 0, errors.New("no categories exist, generate categories first")
	}

	for i := 0; i < n; i++ {
		cat := cats[s.gen.rng.Intn(len(cats))]
		var subID *uuid.UUID
		if s.gen.chance(70) {
			sub := cats[s.gen.rng.Intn(len(cats))]
			subID = &sub.ID
		}

		p := s.gen.Product(cat.ID, subID)
		slug, err := s.catalogSvc.UniqueSlug(ctx, p.Name)
		if err != nil {
			return i, err
		}
		p.Slug = slug
		if err := s.products.Create(ctx, p); err != nil {
			return i, err
		}
	}
	s.logger.Info().Int("count", n).Msg("generated demo products")
	return n, nil
}

// GenerateOrders creates n orders for random existing customers over
// random existing products. Users and products must exist first.
func (s *Seeder) GenerateOrders(ctx context.Context, n int) (int, error) {
	users, _, err := s.users.List(ctx, "user", "", MaxQuantity, 0)
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, errors.New("no customers exist, generate users first")
	}
	products, _, err := s.products.List(ctx, catalog.Filter{IncludeInactive: true}, MaxQuantity, 0)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, errors.New("no products exist, generate products first")
	}

	for i := 0; i < n; i++ {
		u := users[s.gen.rng.Intn(len(users))]
		o := s.gen.Order(u.ID, products)
		if err := s.orders.Create(ctx, o); err != nil {
			return i, err
		}
	}
	s.logger.Info().Int("count", n).Msg("generated demo orders")
	return n, nil
}

// GenerateReviews creates up to n reviews across random user/product
// pairs, skipping pairs that already have one, then refreshes the
// affected product ratings.
func (s *Seeder) GenerateReviews(ctx context.Context, n int) (int, error) {
	users, _, err := s.users.List(ctx, "user", "", MaxQuantity, 0)
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, errors.New("no customers exist, generate users first")
	}
	products, _, err := s.products.List(ctx, catalog.Filter{IncludeInactive: true}, MaxQuantity, 0)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, errors.New("no products exist, generate products first")
	}

	created := 0
	touched := make(map[uuid.UUID]bool)
	for i := 0; i < n; i++ {
		u := users[s.gen.rng.Intn(len(users))]
		p := products[s.gen.rng.Intn(len(products))]
		rv := s.gen.Review(u.ID, p.ID)
		if err := s.reviews.Create(ctx, rv); err != nil {
			if errors.Is(err, review.ErrAlreadyReviewed) {
				continue
			}
			return created, err
		}
		created++
		touched[p.ID] = true
	}

	for productID := range touched {
		avg, count, err := s.reviews.RatingStats(ctx, productID)
		if err != nil {
			return created, err
		}
		rounded := math.Round(avg*10) / 10
		if err := s.products.UpdateRating(ctx, productID, rounded, count); err != nil {
			return created, err
		}
	}
	s.logger.Info().Int("count", created).Msg("generated demo reviews")
	return created, nil
}

// Quantities configures a full generation run.
type Quantities struct {
	Users      int `json:"users"`
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Orders     int `json:"orders"`
	Reviews    int `json:"reviews"`
}

// DefaultQuantities is what generate-all seeds when the caller sends
// nothing.
func DefaultQuantities() Quantities {
	return Quantities{Users: 20, Categories: 8, Products: 50, Orders: 30, Reviews: 40}
}

// GenerateAll seeds everything in dependency order.
func (s *Seeder) GenerateAll(ctx context.Context, q Quantities) (map[string]int, error) {
	result := make(map[string]int)

	n, err := s.GenerateCategories(ctx, q.Categories)
	result["categories"] = n
	if err != nil {
		return result, err
	}
	n, err = s.GenerateUsers(ctx, q.Users)
	result["users"] = n
	if err != nil {
		return result, err
	}
	n, err = s.GenerateProducts(ctx, q.Products)
	result["products"] = n
	if err != nil {
		return result, err
	}
	n, err = s.GenerateOrders(ctx, q.Orders)
	result["orders"] = n
	if err != nil {
		return result, err
	}
	n, err = s.GenerateReviews(ctx, q.Reviews)
	result["reviews"] = n
	return result, err
}

// Clear wipes all storefront data. Admin accounts survive.
func (s *Seeder) Clear(ctx context.Context) error {
	stmts := []string{
		`DELETE FROM reviews`,
		`DELETE FROM order_items`,
		`DELETE FROM orders`,
		`DELETE FROM cart_items`,
		`DELETE FROM carts`,
		`DELETE FROM products`,
		`DELETE FROM categories`,
		`DELETE FROM users WHERE role <> 'admin'`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	s.logger.Info().Msg("cleared demo data")
	return nil
}

// Stats reports the current row counts per entity.
func (s *Seeder) Stats(ctx context.Context) (map[string]int, error) {
	var users, categories, products, orders, reviews int
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'user'),
			(SELECT COUNT(*) FROM categories),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM reviews)`).
		Scan(&users, &categories, &products, &orders, &reviews)
	if err != nil {
		return nil, err
	}
	return map[string]int{
		"users":      users,
		"categories": categories,
		"products":   products,
		"orders":     orders,
		"reviews":    reviews,
	}, nil
}
