package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medicart/medicart/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type cartRepoPG struct{ pool *pgxpool.Pool }

func NewCartRepoPG(pool *pgxpool.Pool) CartRepository {
	return &cartRepoPG{pool: pool}
}

func (r *cartRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *cartRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	var c Cart
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, user_id, subtotal, total, created_at, updated_at
		FROM carts WHERE user_id = $1`, userID).
		Scan(&c.ID, &c.UserID, &c.Subtotal, &c.Total, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT i.id, i.cart_id, i.product_id, i.quantity, i.price,
			p.name, p.slug, p.images, p.price, p.stock_quantity, p.prescription_required
		FROM cart_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.cart_id = $1
		ORDER BY i.created_at`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item CartItem
		var prod ItemProduct
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.Price,
			&prod.Name, &prod.Slug, &prod.Images, &prod.Price, &prod.StockQuantity, &prod.PrescriptionRequired); err != nil {
			return nil, err
		}
		item.Product = &prod
		c.Items = append(c.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts an empty cart. The unique constraint on user_id keeps
// concurrent first requests from creating two; the loser re-fetches.
func (r *cartRepoPG) Create(ctx context.Context, c *Cart) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO carts (id, user_id, subtotal, total)
		VALUES ($1, $2, 0, 0)
		ON CONFLICT (user_id) DO NOTHING`, c.ID, c.UserID)
	return err
}

func (r *cartRepoPG) AddItem(ctx context.Context, item *CartItem) error {
	item.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, price = EXCLUDED.price`,
		item.ID, item.CartID, item.ProductID, item.Quantity, item.Price)
	return err
}

func (r *cartRepoPG) SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, qty int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// RemoveItem is idempotent: deleting a line that is not there is not an
// error, the cart simply stays as it is.
func (r *cartRepoPG) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	return err
}

func (r *cartRepoPG) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

func (r *cartRepoPG) UpdateTotals(ctx context.Context, cartID uuid.UUID, subtotal, total float64) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE carts SET subtotal = $2, total = $3, updated_at = NOW() WHERE id = $1`,
		cartID, subtotal, total)
	return err
}
