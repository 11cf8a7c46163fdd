package cart

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medicart/medicart/internal/domain/catalog"
	"github.com/medicart/medicart/internal/platform/auth"
	"github.com/medicart/medicart/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.GET("/cart", h.Get)
	authed.POST("/cart/add", h.Add)
	authed.PUT("/cart/update/:productId", h.UpdateQuantity)
	authed.DELETE("/cart/remove/:productId", h.Remove)
	authed.DELETE("/cart/clear", h.Clear)
}

func failCart(c echo.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrInsufficientStock):
		return response.FailErr(c, http.StatusBadRequest, "insufficient stock", err)
	case errors.Is(err, catalog.ErrNotFound):
		return response.FailErr(c, http.StatusNotFound, "product not found", err)
	case errors.Is(err, ErrItemNotFound):
		return response.FailErr(c, http.StatusNotFound, "item not in cart", err)
	default:
		return response.FailErr(c, http.StatusBadRequest, "cart operation failed", err)
	}
}

func (h *Handler) Get(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	cart, err := h.svc.Get(c.Request().Context(), userID)
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "internal error", err)
	}
	return response.OK(c, "cart retrieved", cart)
}

func (h *Handler) Add(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	var in struct {
		ProductID uuid.UUID `json:"productId"`
		Quantity  int       `json:"quantity"`
	}
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	cart, err := h.svc.Add(c.Request().Context(), userID, in.ProductID, in.Quantity)
	if err != nil {
		return failCart(c, err)
	}
	return response.OK(c, "item added to cart", cart)
}

func (h *Handler) UpdateQuantity(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid product id", "")
	}
	var in struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	cart, err := h.svc.UpdateQuantity(c.Request().Context(), userID, productID, in.Quantity)
	if err != nil {
		return failCart(c, err)
	}
	return response.OK(c, "cart updated", cart)
}

func (h *Handler) Remove(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid product id", "")
	}
	cart, err := h.svc.Remove(c.Request().Context(), userID, productID)
	if err != nil {
		return failCart(c, err)
	}
	return response.OK(c, "item removed from cart", cart)
}

func (h *Handler) Clear(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	cart, err := h.svc.Clear(c.Request().Context(), userID)
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "internal error", err)
	}
	return response.OK(c, "cart cleared", cart)
}

func callerID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
}
