package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medicart/medicart/internal/platform/db"
)

type productRepoPG struct{ pool *pgxpool.Pool }

func NewProductRepoPG(pool *pgxpool.Pool) ProductRepository {
	return &productRepoPG{pool: pool}
}

func (r *productRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const productCols = `id, name, slug, description, short_description, brand,
	category_id, subcategory_id, images, price, compare_price, sku, barcode,
	stock_quantity, low_stock_threshold, active_ingredient, strength, dosage_form,
	prescription_required, controlled_substance, expiry_date, storage_conditions,
	side_effects, contraindications, drug_interactions, pregnancy_category,
	is_active, is_featured, is_on_sale, sale_percentage, average_rating,
	total_reviews, tags, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.ShortDescription, &p.Brand,
		&p.CategoryID, &p.SubcategoryID, &p.Images, &p.Price, &p.ComparePrice, &p.SKU, &p.Barcode,
		&p.StockQuantity, &p.LowStockThreshold, &p.ActiveIngredient, &p.Strength, &p.DosageForm,
		&p.PrescriptionRequired, &p.ControlledSubstance, &p.ExpiryDate, &p.StorageConditions,
		&p.SideEffects, &p.Contraindications, &p.DrugInteractions, &p.PregnancyCategory,
		&p.IsActive, &p.IsFeatured, &p.IsOnSale, &p.SalePercentage, &p.AverageRating,
		&p.TotalReviews, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *productRepoPG) Create(ctx context.Context, p *Product) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO products (id, name, slug, description, short_description, brand,
			category_id, subcategory_id, images, price, compare_price, sku, barcode,
			stock_quantity, low_stock_threshold, active_ingredient, strength, dosage_form,
			prescription_required, controlled_substance, expiry_date, storage_conditions,
			side_effects, contraindications, drug_interactions, pregnancy_category,
			is_active, is_featured, is_on_sale, sale_percentage, tags)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31)`,
		p.ID, p.Name, p.Slug, p.Description, p.ShortDescription, p.Brand,
		p.CategoryID, p.SubcategoryID, p.Images, p.Price, p.ComparePrice, p.SKU, p.Barcode,
		p.StockQuantity, p.LowStockThreshold, p.ActiveIngredient, p.Strength, p.DosageForm,
		p.PrescriptionRequired, p.ControlledSubstance, p.ExpiryDate, p.StorageConditions,
		p.SideEffects, p.Contraindications, p.DrugInteractions, p.PregnancyCategory,
		p.IsActive, p.IsFeatured, p.IsOnSale, p.SalePercentage, p.Tags)
	return err
}

func (r *productRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return scanProduct(r.conn(ctx).QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id = $1`, id))
}

func (r *productRepoPG) GetBySlug(ctx context.Context, slug string, activeOnly bool) (*Product, error) {
	q := `SELECT ` + productCols + ` FROM products WHERE slug = $1`
	if activeOnly {
		q += ` AND is_active`
	}
	return scanProduct(r.conn(ctx).QueryRow(ctx, q, slug))
}

// sortColumns maps client sort fields onto columns. Anything else falls
// back to created_at.
var sortColumns = map[string]string{
	"price":     "price",
	"name":      "name",
	"rating":    "average_rating",
	"createdAt": "created_at",
}

func (r *productRepoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Product, int, error) {
	var where []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !f.IncludeInactive {
		where = append(where, "is_active")
	}
	if f.CategoryID != nil {
		n := arg(*f.CategoryID)
		where = append(where, fmt.Sprintf("(category_id = %s OR subcategory_id = %s)", n, n))
	}
	if f.Brand != "" {
		where = append(where, "brand ILIKE "+arg("%"+f.Brand+"%"))
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}
	if f.InStock {
		where = append(where, "stock_quantity > 0")
	}
	if f.PrescriptionRequired != nil {
		where = append(where, "prescription_required = "+arg(*f.PrescriptionRequired))
	}
	if f.OnSale {
		where = append(where, "is_on_sale")
	}
	if f.Featured {
		where = append(where, "is_featured")
	}
	if f.Search != "" {
		n := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf(
			"(name ILIKE %s OR description ILIKE %s OR brand ILIKE %s OR active_ingredient ILIKE %s)", n, n, n, n))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM products`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}

	q := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s %s LIMIT %s OFFSET %s`,
		productCols, clause, col, dir, arg(limit), arg(offset))

	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *productRepoPG) Update(ctx context.Context, p *Product) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE products SET name=$2, description=$3, short_description=$4, brand=$5,
			category_id=$6, subcategory_id=$7, images=$8, price=$9, compare_price=$10,
			sku=$11, barcode=$12, stock_quantity=$13, low_stock_threshold=$14,
			active_ingredient=$15, strength=$16, dosage_form=$17,
			prescription_required=$18, controlled_substance=$19, expiry_date=$20,
			storage_conditions=$21, side_effects=$22, contraindications=$23,
			drug_interactions=$24, pregnancy_category=$25, is_active=$26,
			is_featured=$27, is_on_sale=$28, sale_percentage=$29, tags=$30,
			updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.ShortDescription, p.Brand,
		p.CategoryID, p.SubcategoryID, p.Images, p.Price, p.ComparePrice,
		p.SKU, p.Barcode, p.StockQuantity, p.LowStockThreshold,
		p.ActiveIngredient, p.Strength, p.DosageForm,
		p.PrescriptionRequired, p.ControlledSubstance, p.ExpiryDate,
		p.StorageConditions, p.SideEffects, p.Contraindications,
		p.DrugInteractions, p.PregnancyCategory, p.IsActive,
		p.IsFeatured, p.IsOnSale, p.SalePercentage, p.Tags)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepoPG) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

// DecrementStock is the guard against overselling: the conditional UPDATE
// only takes the units when enough remain, so two concurrent checkouts
// cannot both win the last item.
func (r *productRepoPG) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE products SET stock_quantity = stock_quantity - $2, updated_at = NOW()
		WHERE id = $1 AND stock_quantity >= $2`, id, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *productRepoPG) IncrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		WHERE id = $1`, id, qty)
	return err
}

func (r *productRepoPG) UpdateRating(ctx context.Context, id uuid.UUID, average float64, total int) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE products SET average_rating = $2, total_reviews = $3, updated_at = NOW()
		WHERE id = $1`, id, average, total)
	return err
}
