package review

import (
	"context"
	"errors"
	"fmt"

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

type reviewRepoPG struct{ pool *pgxpool.Pool }

func NewReviewRepoPG(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepoPG{pool: pool}
}

func (r *reviewRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const reviewCols = `r.id, r.user_id, r.product_id, r.rating, r.title, r.comment, r.is_verified,
	r.created_at, r.updated_at, u.first_name, u.last_name`

func scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	var author Author
	err := row.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.Rating, &rv.Title, &rv.Comment, &rv.IsVerified,
		&rv.CreatedAt, &rv.UpdatedAt, &author.FirstName, &author.LastName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	rv.Author = &author
	return &rv, err
}

func (r *reviewRepoPG) Create(ctx context.Context, rv *Review) error {
	rv.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO reviews (id, user_id, product_id, rating, title, comment, is_verified)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rv.ID, rv.UserID, rv.ProductID, rv.Rating, rv.Title, rv.Comment, rv.IsVerified)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyReviewed
	}
	return err
}

func (r *reviewRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	return scanReview(r.conn(ctx).QueryRow(ctx, `
		SELECT `+reviewCols+` FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`, id))
}

func (r *reviewRepoPG) Update(ctx context.Context, rv *Review) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE reviews SET rating=$2, title=$3, comment=$4, updated_at=NOW()
		WHERE id = $1`, rv.ID, rv.Rating, rv.Title, rv.Comment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewRepoPG) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = $1 AND product_id = $2)`,
		userID, productID).Scan(&exists)
	return exists, err
}

func (r *reviewRepoPG) list(ctx context.Context, clause string, args []interface{}, limit, offset int) ([]*Review, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM reviews r`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	q := fmt.Sprintf(`SELECT %s FROM reviews r JOIN users u ON u.id = r.user_id%s
		ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d`,
		reviewCols, clause, len(args)-1, len(args))

	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rv)
	}
	return items, total, rows.Err()
}

func (r *reviewRepoPG) ListByProduct(ctx context.Context, productID uuid.UUID, verifiedOnly bool, limit, offset int) ([]*Review, int, error) {
	clause := ` WHERE r.product_id = $1`
	if verifiedOnly {
		clause += ` AND r.is_verified`
	}
	return r.list(ctx, clause, []interface{}{productID}, limit, offset)
}

func (r *reviewRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Review, int, error) {
	return r.list(ctx, ` WHERE r.user_id = $1`, []interface{}{userID}, limit, offset)
}

func (r *reviewRepoPG) List(ctx context.Context, verified *bool, limit, offset int) ([]*Review, int, error) {
	if verified == nil {
		return r.list(ctx, "", nil, limit, offset)
	}
	return r.list(ctx, ` WHERE r.is_verified = $1`, []interface{}{*verified}, limit, offset)
}

func (r *reviewRepoPG) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE reviews SET is_verified = $2, updated_at = NOW() WHERE id = $1`, id, verified)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reviewRepoPG) RatingStats(ctx context.Context, productID uuid.UUID) (float64, int, error) {
	var avg float64
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE product_id = $1`,
		productID).Scan(&avg, &count)
	return avg, count, err
}
