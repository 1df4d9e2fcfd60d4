package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/petconnect/marketplace/internal/api/metrics"
	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// AdminHandler handles back-office authentication and administration.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type adminSignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type adminResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	IsSuperAdmin bool     `json:"is_super_admin"`
	Permissions  []string `json:"permissions,omitempty"`
}

type adminSignInResponse struct {
	Token string        `json:"token"`
	Admin adminResponse `json:"admin"`
}

type createAdminRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Email       string   `json:"email"       validate:"required,email"`
	Password    string   `json:"password"    validate:"required,min=8"`
	Permissions []string `json:"permissions"`
}

// SignIn authenticates an admin and mints a server-side session.
//
// @Summary      Admin sign in
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      adminSignInRequest  true  "Admin credentials"
// @Success      200   {object}  adminSignInResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /admin/auth/sign-in [post]
func (h *AdminHandler) SignIn(c echo.Context) error {
	var req adminSignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.adminService.SignIn(c.Request().Context(), ports.AdminSignInInput{
		Email:     req.Email,
		Password:  req.Password,
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrLockedOut) {
			metrics.AdminLoginAttemptsTotal.WithLabelValues("locked_out").Inc()
		} else {
			metrics.AdminLoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}
	metrics.AdminLoginAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, adminSignInResponse{
		Token: result.Token,
		Admin: toAdminResponse(result.Admin),
	})
}

// SignOut invalidates the caller's session. Always succeeds.
//
// @Summary      Admin sign out
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /v1/admin/auth/sign-out [post]
func (h *AdminHandler) SignOut(c echo.Context) error {
	token, _ := c.Get("session_token").(string)
	h.adminService.SignOut(c.Request().Context(), token)
	return c.JSON(http.StatusOK, map[string]string{"redirect": domain.PathAdminAuth})
}

// Session returns the admin bound to the presented token. The middleware has
// already validated it, so this is a pure read.
//
// @Summary      Get current admin session
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/admin/auth/session [get]
func (h *AdminHandler) Session(c echo.Context) error {
	admin, err := ctxAdmin(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminResponse(admin))
}

// CreateAdmin creates a co-admin account. Super admin only.
//
// @Summary      Create a co-admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAdminRequest  true  "New admin details"
// @Success      201   {object}  adminResponse
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/admins [post]
func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	admin, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.adminService.CreateAdmin(c.Request().Context(), ports.CreateAdminInput{
		Creator:     admin,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAdminResponse(created))
}

// ListActivity returns the audit trail, newest first.
//
// @Summary      List admin activity
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        admin_id  query     string  false  "Filter by admin"
// @Param        action    query     string  false  "Filter by action"
// @Param        from      query     string  false  "RFC 3339 lower bound"
// @Param        to        query     string  false  "RFC 3339 upper bound"
// @Param        limit     query     int     false  "Max entries (default 50, max 200)"
// @Success      200       {array}   domain.ActivityEntry
// @Router       /v1/admin/activity [get]
func (h *AdminHandler) ListActivity(c echo.Context) error {
	filter := ports.ActivityFilter{
		AdminID: c.QueryParam("admin_id"),
		Action:  c.QueryParam("action"),
	}
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if v := c.QueryParam("from"); v != "" {
		filter.From, _ = time.Parse(time.RFC3339, v)
	}
	if v := c.QueryParam("to"); v != "" {
		filter.To, _ = time.Parse(time.RFC3339, v)
	}

	entries, err := h.adminService.ListActivity(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

func toAdminResponse(a *domain.Admin) adminResponse {
	return adminResponse{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		IsSuperAdmin: a.IsSuperAdmin,
		Permissions:  a.Permissions,
	}
}
