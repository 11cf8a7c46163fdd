package review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medicart/medicart/internal/domain/catalog"
	"github.com/medicart/medicart/internal/platform/auth"
	"github.com/medicart/medicart/pkg/pagination"
	"github.com/medicart/medicart/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, authed, admin *echo.Group) {
	public.GET("/reviews/product/:productId", h.ListByProduct)

	authed.POST("/reviews", h.Create)
	authed.PUT("/reviews/:id", h.Update)
	authed.DELETE("/reviews/:id", h.Delete)
	authed.GET("/reviews/user/reviews", h.ListMine)

	admin.GET("/reviews", h.AdminList)
	admin.PUT("/reviews/:id/verify", h.Verify)
}

func failReview(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrInvalidRating):
		return response.FailErr(c, http.StatusBadRequest, "rating must be between 1 and 5", err)
	case errors.Is(err, ErrAlreadyReviewed):
		return response.FailErr(c, http.StatusConflict, "product already reviewed", err)
	case errors.Is(err, ErrNotFound):
		return response.FailErr(c, http.StatusNotFound, "review not found", err)
	case errors.Is(err, catalog.ErrNotFound):
		return response.FailErr(c, http.StatusNotFound, "product not found", err)
	default:
		return response.FailErr(c, http.StatusInternalServerError, "internal error", err)
	}
}

func (h *Handler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	rv, err := h.svc.Create(c.Request().Context(), userID, in)
	if err != nil {
		return failReview(c, err)
	}
	return response.Created(c, "review created", rv)
}

func (h *Handler) Update(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid review id", "")
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	rv, err := h.svc.Update(c.Request().Context(), userID, reviewID, in)
	if err != nil {
		return failReview(c, err)
	}
	return response.OK(c, "review updated", rv)
}

func (h *Handler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid review id", "")
	}
	if err := h.svc.Delete(c.Request().Context(), userID, reviewID); err != nil {
		return failReview(c, err)
	}
	return response.OK(c, "review deleted", nil)
}

func (h *Handler) ListByProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid product id", "")
	}
	p := pagination.FromContext(c)
	items, total, err := h.svc.ListByProduct(c.Request().Context(), productID, p.Limit, p.Offset())
	if err != nil {
		return failReview(c, err)
	}
	return response.List(c, "reviews retrieved", items, p.NewMeta(total))
}

func (h *Handler) ListMine(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	p := pagination.FromContext(c)
	items, total, err := h.svc.ListMine(c.Request().Context(), userID, p.Limit, p.Offset())
	if err != nil {
		return failReview(c, err)
	}
	return response.List(c, "reviews retrieved", items, p.NewMeta(total))
}

func (h *Handler) AdminList(c echo.Context) error {
	p := pagination.FromContext(c)
	var verified *bool
	if v := c.QueryParam("verified"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return response.Fail(c, http.StatusBadRequest, "invalid verified filter", "")
		}
		verified = &b
	}
	items, total, err := h.svc.AdminList(c.Request().Context(), verified, p.Limit, p.Offset())
	if err != nil {
		return failReview(c, err)
	}
	return response.List(c, "reviews retrieved", items, p.NewMeta(total))
}

func (h *Handler) Verify(c echo.Context) error {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid review id", "")
	}
	var in struct {
		IsVerified bool `json:"isVerified"`
	}
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	rv, err := h.svc.Verify(c.Request().Context(), reviewID, in.IsVerified)
	if err != nil {
		return failReview(c, err)
	}
	return response.OK(c, "review updated", rv)
}

func callerID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
}
