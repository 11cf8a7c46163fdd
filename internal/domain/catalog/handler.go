package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medicart/medicart/pkg/pagination"
	"github.com/medicart/medicart/pkg/response"
)

const storefrontPageSize = 12

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, admin *echo.Group) {
	public.GET("/products", h.ListProducts)
	public.GET("/products/featured/featured", h.FeaturedProducts)
	public.GET("/products/sale/on-sale", h.OnSaleProducts)
	public.GET("/products/search/search", h.SearchProducts)
	public.GET("/products/:slug", h.GetProduct)
	public.GET("/categories", h.ListCategories)
	public.GET("/categories/:slug", h.GetCategory)

	admin.GET("/products", h.AdminListProducts)
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)
	admin.GET("/categories", h.AdminListCategories)
	admin.POST("/categories", h.CreateCategory)
	admin.PUT("/categories/:id", h.UpdateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)
}

func failCatalog(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return response.FailErr(c, http.StatusNotFound, "not found", err)
	case errors.Is(err, ErrSlugTaken):
		return response.FailErr(c, http.StatusConflict, "slug already exists", err)
	case errors.Is(err, ErrCategoryCycle):
		return response.FailErr(c, http.StatusBadRequest, "invalid category parent", err)
	default:
		return response.FailErr(c, http.StatusInternalServerError, "internal error", err)
	}
}

func filterFromQuery(c echo.Context) Filter {
	f := Filter{
		Category:  c.QueryParam("category"),
		Brand:     c.QueryParam("brand"),
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	if v := c.QueryParam("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	if v := c.QueryParam("inStock"); v == "true" {
		f.InStock = true
	}
	if v := c.QueryParam("prescriptionRequired"); v != "" {
		b := v == "true"
		f.PrescriptionRequired = &b
	}
	if c.QueryParam("onSale") == "true" {
		f.OnSale = true
	}
	if c.QueryParam("featured") == "true" {
		f.Featured = true
	}
	return f
}

// -- Public endpoints --

func (h *Handler) ListProducts(c echo.Context) error {
	pg := pagination.FromContextDefault(c, storefrontPageSize)
	items, total, err := h.svc.ListProducts(c.Request().Context(), filterFromQuery(c), pg.Limit, pg.Offset())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Unknown category filter yields an empty page, not a 404.
			return response.List(c, "products retrieved", []*Product{}, pg.NewMeta(0))
		}
		return failCatalog(c, err)
	}
	return response.List(c, "products retrieved", items, pg.NewMeta(total))
}

func (h *Handler) GetProduct(c echo.Context) error {
	p, err := h.svc.GetProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return failCatalog(c, err)
	}
	return response.OK(c, "product retrieved", p)
}

func (h *Handler) FeaturedProducts(c echo.Context) error {
	items, err := h.svc.FeaturedProducts(c.Request().Context(), 8)
	if err != nil {
		return failCatalog(c, err)
	}
	return response.OK(c, "featured products retrieved", items)
}

func (h *Handler) OnSaleProducts(c echo.Context) error {
	items, err := h.svc.OnSaleProducts(c.Request().Context(), 8)
	if err != nil {
		return failCatalog(c, err)
	}
	return response.OK(c, "sale products retrieved", items)
}

func (h *Handler) SearchProducts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return response.Fail(c, http.StatusBadRequest, "search query is required", "")
	}
	pg := pagination.FromContextDefault(c, storefrontPageSize)
	items, total, err := h.svc.SearchProducts(c.Request().Context(), q, pg.Limit, pg.Offset())
	if err != nil {
		return failCatalog(c, err)
	}
	return response.List(c, "search results retrieved", items, pg.NewMeta(total))
}

func (h *Handler) ListCategories(c echo.Context) error {
	items, err := h.svc.ListCategories(c.Request().Context(), true)
	if err != nil {
		return failCatalog(c, err)
	}
	return response.OK(c, "categories retrieved", items)
}

func (h *Handler) GetCategory(c echo.Context) error {
	cat, err := h.svc.GetCategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return failCatalog(c, err)
	}
	return response.OK(c, "category retrieved", cat)
}

// -- Admin endpoints --

func (h *Handler) AdminListProducts(c echo.Context) error {
	pg := pagination.FromContext(c)
	f := filterFromQuery(c)
	f.IncludeInactive = true
	items, total, err := h.svc.ListProducts(c.Request().Context(), f, pg.Limit, pg.Offset())
	if err != nil {
		return failCatalog(c, err)
	}
	return response.List(c, "products retrieved", items, pg.NewMeta(total))
}

func (h *Handler) CreateProduct(c echo.Context) error {
	var p Product
	if err := c.Bind(&p); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	if err := h.svc.CreateProduct(c.Request().Context(), &p); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrSlugTaken) {
			return failCatalog(c, err)
		}
		return response.FailErr(c, http.StatusBadRequest, "invalid product", err)
	}
	return response.Created(c, "product created", p)
}

func (h *Handler) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid product id", "")
	}
	var p Product
	if err := c.Bind(&p); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	p.ID = id
	if err := h.svc.UpdateProduct(c.Request().Context(), &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return failCatalog(c, err)
		}
		return response.FailErr(c, http.StatusBadRequest, "invalid product", err)
	}
	return response.OK(c, "product updated", p)
}

func (h *Handler) DeleteProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid product id", "")
	}
	if err := h.svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return failCatalog(c, err)
	}
	return response.OK(c, "product deleted", nil)
}

func (h *Handler) AdminListCategories(c echo.Context) error {
	items, err := h.svc.ListCategories(c.Request().Context(), false)
	if err != nil {
		return failCatalog(c, err)
	}
	return response.OK(c, "categories retrieved", items)
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var cat Category
	if err := c.Bind(&cat); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	if err := h.svc.CreateCategory(c.Request().Context(), &cat); err != nil {
		if errors.Is(err, ErrSlugTaken) || errors.Is(err, ErrNotFound) {
			return failCatalog(c, err)
		}
		return response.FailErr(c, http.StatusBadRequest, "invalid category", err)
	}
	return response.Created(c, "category created", cat)
}

func (h *Handler) UpdateCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid category id", "")
	}
	var cat Category
	if err := c.Bind(&cat); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	cat.ID = id
	if err := h.svc.UpdateCategory(c.Request().Context(), &cat); err != nil {
		if errors.Is(err, ErrCategoryCycle) || errors.Is(err, ErrNotFound) {
			return failCatalog(c, err)
		}
		return response.FailErr(c, http.StatusBadRequest, "invalid category", err)
	}
	return response.OK(c, "category updated", cat)
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid category id", "")
	}
	if err := h.svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return failCatalog(c, err)
	}
	return response.OK(c, "category deleted", nil)
}
