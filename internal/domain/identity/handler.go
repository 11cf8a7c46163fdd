package identity

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

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

// RegisterRoutes wires the auth endpoints. public is unauthenticated,
// authed requires a bearer token, admin additionally requires the admin role.
func (h *Handler) RegisterRoutes(public, authed, admin *echo.Group) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	public.POST("/auth/forgot-password", h.ForgotPassword)
	public.POST("/auth/reset-password", h.ResetPassword)

	authed.GET("/auth/me", h.Me)
	authed.PUT("/auth/profile", h.UpdateProfile)
	authed.PUT("/auth/change-password", h.ChangePassword)

	admin.GET("/users", h.AdminListUsers)
}

// authPayload is the data block returned by register and login.
type authPayload struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	u, token, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return response.FailErr(c, http.StatusConflict, "email already registered", err)
		}
		return response.FailErr(c, http.StatusBadRequest, "registration failed", err)
	}
	return response.Created(c, "registration successful", authPayload{User: u, Token: token})
}

func (h *Handler) Login(c echo.Context) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	u, token, err := h.svc.Login(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "invalid credentials", "")
	}
	return response.OK(c, "login successful", authPayload{User: u, Token: token})
}

func (h *Handler) Me(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	u, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return response.FailErr(c, http.StatusNotFound, "user not found", err)
	}
	return response.OK(c, "user retrieved", u)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	var in ProfileInput
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	u, err := h.svc.UpdateProfile(c.Request().Context(), id, in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.FailErr(c, http.StatusNotFound, "user not found", err)
		}
		return response.FailErr(c, http.StatusBadRequest, "profile update failed", err)
	}
	return response.OK(c, "profile updated", u)
}

func (h *Handler) ChangePassword(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "unauthorized", "")
	}
	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	if err := h.svc.ChangePassword(c.Request().Context(), id, in.CurrentPassword, in.NewPassword); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return response.Fail(c, http.StatusUnauthorized, "current password is incorrect", "")
		}
		return response.FailErr(c, http.StatusBadRequest, "password change failed", err)
	}
	return response.OK(c, "password changed", nil)
}

func (h *Handler) ForgotPassword(c echo.Context) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	token, err := h.svc.ForgotPassword(c.Request().Context(), in.Email)
	if err != nil {
		// Do not reveal whether the address exists.
		return response.OK(c, "if the account exists, a reset token has been issued", nil)
	}
	return response.OK(c, "reset token issued", map[string]string{"resetToken": token})
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var in struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind(&in); err != nil {
		return response.FailErr(c, http.StatusBadRequest, "invalid request body", err)
	}
	if err := h.svc.ResetPassword(c.Request().Context(), in.Token, in.NewPassword); err != nil {
		if errors.Is(err, ErrResetTokenInvalid) {
			return response.Fail(c, http.StatusBadRequest, "reset token invalid or expired", "")
		}
		return response.FailErr(c, http.StatusBadRequest, "password reset failed", err)
	}
	return response.OK(c, "password reset", nil)
}

func (h *Handler) AdminListUsers(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListCustomers(c.Request().Context(), c.QueryParam("search"), pg.Limit, pg.Offset())
	if err != nil {
		return response.FailErr(c, http.StatusInternalServerError, "internal error", err)
	}
	return response.List(c, "users retrieved", items, pg.NewMeta(total))
}

func callerID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
}
