package demo

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/medicart/medicart/pkg/response"
)

// Handler exposes the demo data endpoints. Generation runs are
// serialized; overlapping seed requests would fight over slugs.
type Handler struct {
	seeder *Seeder
	mu     sync.Mutex
}

func NewHandler(seeder *Seeder) *Handler {
	return &Handler{seeder: seeder}
}

func (h *Handler) RegisterRoutes(admin *echo.Group) {
	admin.POST("/demo/generate", h.Generate)
	admin.POST("/demo/generate-all", h.GenerateAll)
	admin.DELETE("/demo/clear", h.Clear)
	admin.GET("/demo/stats", h.Stats)
}

func (h *Handler) Generate(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var in struct {
		Type     string `json:"type"`
		Quantity int    `json:"quantity"`
	}
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	if in.Quantity < 1 || in.Quantity > MaxQuantity {
		return response.Fail(c, http.StatusBadRequest, "quantity must be between 1 and 100", "")
	}

	ctx := c.Request().Context()
	var created int
	var err error
	switch in.Type {
	case "users":
		created, err = h.seeder.GenerateUsers(ctx, in.Quantity)
	case "categories":
		created, err = h.seeder.GenerateCategories(ctx, in.Quantity)
	case "products":
		created, err = h.seeder.GenerateProducts(ctx, in.Quantity)
	case "orders":
		created, err = h.seeder.GenerateOrders(ctx, in.Quantity)
	case "reviews":
		created, err = h.seeder.GenerateReviews(ctx, in.Quantity)
	default:
		return response.Fail(c, http.StatusBadRequest, "unknown demo data type", in.Type)
	}
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "demo data generation failed", err)
	}
	return response.OK(c, "demo data generated", map[string]interface{}{
		"type":    in.Type,
		"created": created,
	})
}

func (h *Handler) GenerateAll(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var in struct {
		Quantities *Quantities `json:"quantities"`
	}
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	q := DefaultQuantities()
	if in.Quantities != nil {
		q = *in.Quantities
	}
	for _, n := range []int{q.Users, q.Categories, q.Products, q.Orders, q.Reviews} {
		if n < 1 || n > MaxQuantity {
			return response.Fail(c, http.StatusBadRequest, "quantities must be between 1 and 100", "")
		}
	}

	result, err := h.seeder.GenerateAll(c.Request().Context(), q)
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "demo data generation failed", err)
	}
	return response.OK(c, "demo data generated", result)
}

func (h *Handler) Clear(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.seeder.Clear(c.Request().Context()); err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "failed to clear demo data", err)
	}
	return response.OK(c, "demo data cleared", nil)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.seeder.Stats(c.Request().Context())
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "failed to load stats", err)
	}
	return response.OK(c, "demo data stats", stats)
}
