// Package reporting serves the admin dashboard and sales analytics
// straight off the database pool. Queries return rows as maps so new
// columns show up in the JSON without model churn.
package reporting

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/medicart/medicart/pkg/response"
)

const (
	recentOrderCount = 5
	lowStockLimit    = 10
	topProductCount  = 10
	defaultSalesDays = 30
	maxSalesPeriod   = 365
)

type Handler struct {
	pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

func (h *Handler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/dashboard", h.Dashboard)
	admin.GET("/analytics/sales", h.SalesAnalytics)
}

// Dashboard aggregates storefront health in one round of queries:
// entity counts, paid revenue, the latest orders, products at or below
// their restock threshold, and orders waiting on prescription approval.
func (h *Handler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	var totalProducts, totalOrders, totalUsers int
	var revenue float64
	err := h.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM users WHERE role = 'user'),
			(SELECT COALESCE(SUM(total), 0) FROM orders WHERE payment_status = 'paid')`).
		Scan(&totalProducts, &totalOrders, &totalUsers, &revenue)
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "dashboard query failed", err)
	}

	recentOrders, err := h.queryRows(ctx, `
		SELECT o.id, o.total, o.status, o.payment_status, o.created_at,
			u.first_name, u.last_name, u.email
		FROM orders o JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC LIMIT $1`, recentOrderCount)
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "dashboard query failed", err)
	}

	lowStock, err := h.queryRows(ctx, `
		SELECT id, name, slug, stock_quantity, low_stock_threshold
		FROM products
		WHERE is_active AND stock_quantity <= low_stock_threshold
		ORDER BY stock_quantity ASC LIMIT $1`, lowStockLimit)
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "dashboard query failed", err)
	}

	pendingPrescriptions, err := h.queryRows(ctx, `
		SELECT o.id, o.total, o.status, o.prescription_image, o.created_at,
			u.first_name, u.last_name, u.email
		FROM orders o JOIN users u ON u.id = o.user_id
		WHERE o.prescription_required AND NOT o.prescription_approved
		ORDER BY o.created_at ASC`)
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "dashboard query failed", err)
	}

	return response.OK(c, "dashboard retrieved", map[string]interface{}{
		"stats": map[string]interface{}{
			"totalProducts": totalProducts,
			"totalOrders":   totalOrders,
			"totalUsers":    totalUsers,
			"totalRevenue":  revenue,
		},
		"recentOrders":         recentOrders,
		"lowStockProducts":     lowStock,
		"pendingPrescriptions": pendingPrescriptions,
	})
}

// SalesAnalytics reports per-day paid sales over the requested period
// plus the best selling products by units moved.
func (h *Handler) SalesAnalytics(c echo.Context) error {
	ctx := c.Request().Context()

	days, ok := parsePeriod(c.QueryParam("period"))
	if !ok {
		return response.Fail(c, http.StatusBadRequest, "invalid period", "")
	}
	since := time.Now().AddDate(0, 0, -days)

	daily, err := h.queryRows(ctx, `
		SELECT DATE(created_at) AS date,
			COALESCE(SUM(total), 0) AS "totalSales",
			COUNT(*) AS "orderCount"
		FROM orders
		WHERE payment_status = 'paid' AND created_at >= $1
		GROUP BY DATE(created_at)
		ORDER BY date ASC`, since)
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "analytics query failed", err)
	}

	topProducts, err := h.queryRows(ctx, `
		SELECT p.id, p.name, p.slug,
			SUM(i.quantity) AS "unitsSold",
			SUM(i.total) AS "revenue"
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		JOIN products p ON p.id = i.product_id
		WHERE o.payment_status = 'paid' AND o.created_at >= $1
		GROUP BY p.id, p.name, p.slug
		ORDER BY SUM(i.quantity) DESC LIMIT $2`, since, topProductCount)
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "analytics query failed", err)
	}

	return response.OK(c, "sales analytics retrieved", map[string]interface{}{
		"period":      days,
		"dailySales":  daily,
		"topProducts": topProducts,
	})
}

// parsePeriod turns the ?period= query value into a day count. Empty
// means the default window; anything outside 1..maxSalesPeriod is
// rejected.
func parsePeriod(v string) (int, bool) {
	if v == "" {
		return defaultSalesDays, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxSalesPeriod {
		return 0, false
	}
	return n, true
}

// queryRows runs a query and returns the rows as column-name keyed maps.
func (h *Handler) queryRows(ctx context.Context, sql string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := h.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	results := []map[string]interface{}{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(fieldDescs))
		for i, fd := range fieldDescs {
			row[string(fd.Name)] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
