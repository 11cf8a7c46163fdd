package order

import (
	"errors"
	"net/http"

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

func (h *Handler) RegisterRoutes(authed, admin *echo.Group) {
	authed.POST("/orders", h.Place)
	authed.GET("/orders", h.ListMine)
	authed.GET("/orders/:id", h.Get)
	authed.PUT("/orders/:id/cancel", h.Cancel)

	admin.GET("/orders", h.AdminList)
	admin.PUT("/orders/:id/status", h.AdminUpdateStatus)
	admin.PUT("/orders/:id/prescription", h.AdminApprovePrescription)
}

func failOrder(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return response.FailErr(c, http.StatusNotFound, "order not found", err)
	case errors.Is(err, ErrEmptyCart):
		return response.FailErr(c, http.StatusBadRequest, "cart is empty", err)
	case errors.Is(err, ErrInvalidState):
		return response.FailErr(c, http.StatusBadRequest, "invalid order state", err)
	case errors.Is(err, catalog.ErrInsufficientStock):
		return response.FailErr(c, http.StatusBadRequest, "insufficient stock", err)
	default:
		return response.FailErr(c, http.StatusBadRequest, "order operation failed", err)
	}
}

func (h *Handler) Place(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	var in PlaceInput
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	o, err := h.svc.Place(c.Request().Context(), userID, in)
	if err != nil {
		return failOrder(c, err)
	}
	return response.Created(c, "order placed", o)
}

func (h *Handler) ListMine(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByUser(c.Request().Context(), userID, pg.Limit, pg.Offset())
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "internal error", err)
	}
	return response.List(c, "orders retrieved", items, pg.NewMeta(total))
}

func (h *Handler) Get(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid order id", "")
	}
	isAdmin := auth.RoleFromContext(c.Request().Context()) == "admin"
	o, err := h.svc.Get(c.Request().Context(), userID, isAdmin, orderID)
	if err != nil {
		return failOrder(c, err)
	}
	return response.OK(c, "order retrieved", o)
}

func (h *Handler) Cancel(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid order id", "")
	}
	o, err := h.svc.Cancel(c.Request().Context(), userID, orderID)
	if err != nil {
		return failOrder(c, err)
	}
	return response.OK(c, "order cancelled", o)
}

func (h *Handler) AdminList(c echo.Context) error {
	pg := pagination.FromContext(c)
	f := ListFilter{
		Status:        c.QueryParam("status"),
		PaymentStatus: c.QueryParam("paymentStatus"),
	}
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset())
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "internal error", err)
	}
	return response.List(c, "orders retrieved", items, pg.NewMeta(total))
}

func (h *Handler) AdminUpdateStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid order id", "")
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	o, err := h.svc.UpdateStatus(c.Request().Context(), orderID, in.Status)
	if err != nil {
		return failOrder(c, err)
	}
	return response.OK(c, "order status updated", o)
}

func (h *Handler) AdminApprovePrescription(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid order id", "")
	}
	var in struct {
		Approved bool   `json:"approved"`
		Notes    string `json:"notes"`
	}
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	o, err := h.svc.ApprovePrescription(c.Request().Context(), orderID, in.Approved, in.Notes)
	if err != nil {
		return failOrder(c, err)
	}
	return response.OK(c, "prescription updated", o)
}

func callerID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
}
