package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/medicart/medicart/internal/domain/cart"
	"github.com/medicart/medicart/internal/domain/catalog"
)

// snapshotter lets the mock transaction roll mutations back, mirroring
// what the real database transaction gives the service.
type snapshotter interface {
	snapshot() (restore func())
}

type mockTx struct {
	stores []snapshotter
}

func (m *mockTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	restores := make([]func(), len(m.stores))
	for i, s := range m.stores {
		restores[i] = s.snapshot()
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

type mockProductStore struct {
	items map[uuid.UUID]*catalog.Product
}

func (m *mockProductStore) snapshot() func() {
	saved := make(map[uuid.UUID]*catalog.Product, len(m.items))
	for id, p := range m.items {
		cp := *p
		saved[id] = &cp
	}
	return func() { m.items = saved }
}

func (m *mockProductStore) add(name string, price float64, stock int, rx bool) *catalog.Product {
	p := &catalog.Product{
		ID: uuid.New(), Name: name, Price: price,
		StockQuantity: stock, PrescriptionRequired: rx, IsActive: true,
	}
	m.items[p.ID] = p
	return p
}

func (m *mockProductStore) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductStore) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	p, ok := m.items[id]
	if !ok {
		return catalog.ErrNotFound
	}
	if p.StockQuantity < qty {
		return catalog.ErrInsufficientStock
	}
	p.StockQuantity -= qty
	return nil
}

func (m *mockProductStore) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	p, ok := m.items[id]
	if !ok {
		return catalog.ErrNotFound
	}
	p.StockQuantity += qty
	return nil
}

type mockCartStore struct {
	carts  map[uuid.UUID]*cart.Cart // by user id
	getErr error                    // forced failure for GetByUserID
}

func (m *mockCartStore) snapshot() func() {
	saved := make(map[uuid.UUID]*cart.Cart, len(m.carts))
	for id, c := range m.carts {
		cp := *c
		cp.Items = make([]*cart.CartItem, len(c.Items))
		for i, item := range c.Items {
			ic := *item
			cp.Items[i] = &ic
		}
		saved[id] = &cp
	}
	return func() { m.carts = saved }
}

func (m *mockCartStore) seed(userID uuid.UUID, lines ...*cart.CartItem) *cart.Cart {
	c := &cart.Cart{ID: uuid.New(), UserID: userID, Items: lines}
	c.Recompute()
	m.carts[userID] = c
	return c
}

func (m *mockCartStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.carts[userID]
	if !ok {
		return nil, cart.ErrNotFound
	}
	return c, nil
}

func (m *mockCartStore) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	for _, c := range m.carts {
		if c.ID == cartID {
			c.Items = nil
			return nil
		}
	}
	return cart.ErrNotFound
}

func (m *mockCartStore) UpdateTotals(ctx context.Context, cartID uuid.UUID, subtotal, total float64) error {
	for _, c := range m.carts {
		if c.ID == cartID {
			c.Subtotal = subtotal
			c.Total = total
			return nil
		}
	}
	return cart.ErrNotFound
}

type mockOrderRepo struct {
	items map[uuid.UUID]*Order
}

func (m *mockOrderRepo) snapshot() func() {
	saved := make(map[uuid.UUID]*Order, len(m.items))
	for id, o := range m.items {
		cp := *o
		cp.Items = make([]*OrderItem, len(o.Items))
		for i, item := range o.Items {
			ic := *item
			cp.Items[i] = &ic
		}
		saved[id] = &cp
	}
	return func() { m.items = saved }
}

func (m *mockOrderRepo) Create(ctx context.Context, o *Order) error {
	o.ID = uuid.New()
	for _, item := range o.Items {
		item.ID = uuid.New()
		item.OrderID = o.ID
	}
	cp := *o
	m.items[o.ID] = &cp
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Order, int, error) {
	var out []*Order
	for _, o := range m.items {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (m *mockOrderRepo) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Order, int, error) {
	var out []*Order
	for _, o := range m.items {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.PaymentStatus != "" && o.PaymentStatus != f.PaymentStatus {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	o, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	return nil
}

func (m *mockOrderRepo) SetPrescriptionApproval(ctx context.Context, id uuid.UUID, approved bool, notes string) error {
	o, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	o.PrescriptionApproved = approved
	if notes != "" {
		o.Notes = notes
	}
	return nil
}

func newOrderFixture() (*Service, *mockOrderRepo, *mockCartStore, *mockProductStore) {
	orders := &mockOrderRepo{items: make(map[uuid.UUID]*Order)}
	carts := &mockCartStore{carts: make(map[uuid.UUID]*cart.Cart)}
	products := &mockProductStore{items: make(map[uuid.UUID]*catalog.Product)}
	tx := &mockTx{stores: []snapshotter{orders, carts, products}}
	return NewService(orders, carts, products, tx), orders, carts, products
}
