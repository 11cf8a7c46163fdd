package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/medicart/medicart/internal/domain/catalog"
)

type mockCartRepo struct {
	carts map[uuid.UUID]*Cart // by user id
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[uuid.UUID]*Cart)}
}

func (m *mockCartRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	c, ok := m.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	cp.Items = make([]*CartItem, len(c.Items))
	for i, item := range c.Items {
		ic := *item
		cp.Items[i] = &ic
	}
	return &cp, nil
}

func (m *mockCartRepo) Create(ctx context.Context, c *Cart) error {
	if _, ok := m.carts[c.UserID]; ok {
		return nil
	}
	c.ID = uuid.New()
	m.carts[c.UserID] = &Cart{ID: c.ID, UserID: c.UserID}
	return nil
}

func (m *mockCartRepo) byCartID(cartID uuid.UUID) *Cart {
	for _, c := range m.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (m *mockCartRepo) AddItem(ctx context.Context, item *CartItem) error {
	c := m.byCartID(item.CartID)
	if c == nil {
		return ErrNotFound
	}
	for _, line := range c.Items {
		if line.ProductID == item.ProductID {
			line.Quantity += item.Quantity
			line.Price = item.Price
			return nil
		}
	}
	item.ID = uuid.New()
	cp := *item
	c.Items = append(c.Items, &cp)
	return nil
}

func (m *mockCartRepo) SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, qty int) error {
	c := m.byCartID(cartID)
	if c == nil {
		return ErrNotFound
	}
	for _, line := range c.Items {
		if line.ProductID == productID {
			line.Quantity = qty
			return nil
		}
	}
	return ErrItemNotFound
}

func (m *mockCartRepo) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	c := m.byCartID(cartID)
	if c == nil {
		return ErrNotFound
	}
	for i, line := range c.Items {
		if line.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockCartRepo) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	c := m.byCartID(cartID)
	if c == nil {
		return ErrNotFound
	}
	c.Items = nil
	return nil
}

func (m *mockCartRepo) UpdateTotals(ctx context.Context, cartID uuid.UUID, subtotal, total float64) error {
	c := m.byCartID(cartID)
	if c == nil {
		return ErrNotFound
	}
	c.Subtotal = subtotal
	c.Total = total
	return nil
}

type mockProductStore struct {
	items map[uuid.UUID]*catalog.Product
}

func (m *mockProductStore) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductStore) add(name string, price float64, stock int) *catalog.Product {
	p := &catalog.Product{ID: uuid.New(), Name: name, Price: price, StockQuantity: stock, IsActive: true}
	m.items[p.ID] = p
	return p
}

func newCartFixture() (*Service, *mockCartRepo, *mockProductStore) {
	repo := newMockCartRepo()
	store := &mockProductStore{items: make(map[uuid.UUID]*catalog.Product)}
	return NewService(repo, store), repo, store
}

func TestGet_CreatesCartLazily(t *testing.T) {
	svc, _, _ := newCartFixture()
	userID := uuid.New()

	c, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if c.UserID != userID {
		t.Errorf("unexpected cart owner: %s", c.UserID)
	}
	if len(c.Items) != 0 || c.Subtotal != 0 || c.Total != 0 {
		t.Error("expected a fresh empty cart")
	}
}

func TestAdd_RecomputesTotals(t *testing.T) {
	svc, _, store := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()

	aspirin := store.add("Aspirin", 2.50, 100)
	vitamins := store.add("Vitamin D", 8.00, 50)

	if _, err := svc.Add(ctx, userID, aspirin.ID, 2); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	c, err := svc.Add(ctx, userID, vitamins.ID, 3)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	want := 2*2.50 + 3*8.00
	if c.Subtotal != want {
		t.Errorf("expected subtotal %v, got %v", want, c.Subtotal)
	}
	if c.Total != c.Subtotal {
		t.Errorf("expected total == subtotal, got %v != %v", c.Total, c.Subtotal)
	}
}

func TestAdd_MergesExistingLine(t *testing.T) {
	svc, _, store := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()

	p := store.add("Aspirin", 2.50, 100)
	if _, err := svc.Add(ctx, userID, p.ID, 2); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	c, err := svc.Add(ctx, userID, p.ID, 3)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	if len(c.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", c.Items[0].Quantity)
	}
}

func TestAdd_InsufficientStockLeavesCartUnchanged(t *testing.T) {
	svc, _, store := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()

	p := store.add("Rare Medicine", 99.99, 3)
	if _, err := svc.Add(ctx, userID, p.ID, 2); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	_, err := svc.Add(ctx, userID, p.ID, 4)
	if !errors.Is(err, catalog.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	c, err := svc.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].Quantity != 2 {
		t.Error("cart changed after failed add")
	}
	if c.Subtotal != 2*99.99 {
		t.Errorf("totals changed after failed add: %v", c.Subtotal)
	}
}

func TestAdd_ChecksRequestedQuantityOnly(t *testing.T) {
	svc, _, store := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()

	p := store.add("Rare Medicine", 99.99, 3)
	if _, err := svc.Add(ctx, userID, p.ID, 2); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	// 2 already in the cart, 2 more requested: stock covers the
	// request, so the add merges even though the line ends above stock.
	// Checkout validates the full line against stock.
	c, err := svc.Add(ctx, userID, p.ID, 2)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	line := c.Item(p.ID)
	if line == nil || line.Quantity != 4 {
		t.Fatalf("expected merged line of 4, got %+v", line)
	}
}

func TestAdd_UnknownProduct(t *testing.T) {
	svc, _, _ := newCartFixture()
	_, err := svc.Add(context.Background(), uuid.New(), uuid.New(), 1)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateQuantity(t *testing.T) {
	svc, _, store := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()

	p := store.add("Aspirin", 2.00, 10)
	if _, err := svc.Add(ctx, userID, p.ID, 1); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	c, err := svc.UpdateQuantity(ctx, userID, p.ID, 4)
	if err != nil {
		t.Fatalf("UpdateQuantity() error: %v", err)
	}
	if c.Items[0].Quantity != 4 || c.Subtotal != 8.00 {
		t.Errorf("unexpected state: qty=%d subtotal=%v", c.Items[0].Quantity, c.Subtotal)
	}

	if _, err := svc.UpdateQuantity(ctx, userID, p.ID, 11); !errors.Is(err, catalog.ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, userID, p.ID, 0); err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestUpdateQuantity_ItemNotInCart(t *testing.T) {
	svc, _, store := newCartFixture()
	p := store.add("Aspirin", 2.00, 10)
	_, err := svc.UpdateQuantity(context.Background(), uuid.New(), p.ID, 1)
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	svc, _, store := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()

	a := store.add("Aspirin", 2.00, 10)
	b := store.add("Bandages", 4.00, 10)
	if _, err := svc.Add(ctx, userID, a.ID, 1); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if _, err := svc.Add(ctx, userID, b.ID, 1); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	c, err := svc.Remove(ctx, userID, a.ID)
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if len(c.Items) != 1 || c.Subtotal != 4.00 {
		t.Errorf("unexpected state after remove: items=%d subtotal=%v", len(c.Items), c.Subtotal)
	}

	c, err = svc.Clear(ctx, userID)
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if len(c.Items) != 0 || c.Subtotal != 0 || c.Total != 0 {
		t.Error("expected empty cart after clear")
	}
}

func TestRemove_AbsentItemIsNoOp(t *testing.T) {
	svc, _, store := newCartFixture()
	ctx := context.Background()
	userID := uuid.New()

	a := store.add("Aspirin", 2.00, 10)
	b := store.add("Bandages", 4.00, 10)
	if _, err := svc.Add(ctx, userID, a.ID, 1); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	// never carted
	c, err := svc.Remove(ctx, userID, b.ID)
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if len(c.Items) != 1 || c.Subtotal != 2.00 {
		t.Errorf("cart changed by removing absent item: items=%d subtotal=%v", len(c.Items), c.Subtotal)
	}

	// already removed
	if _, err := svc.Remove(ctx, userID, a.ID); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	c, err = svc.Remove(ctx, userID, a.ID)
	if err != nil {
		t.Fatalf("second Remove() error: %v", err)
	}
	if len(c.Items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(c.Items))
	}
}
