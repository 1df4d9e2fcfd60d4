package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petconnect/marketplace/internal/api/metrics"
	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	routeService ports.RouteService
}

func NewAuthHandler(authService ports.AuthService, routeService ports.RouteService) *AuthHandler {
	return &AuthHandler{authService: authService, routeService: routeService}
}

type signUpRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	UserType string `json:"user_type" validate:"omitempty,oneof=pet_owner pet_sitter pet_shelter"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token    string       `json:"token"`
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

// SignUp registers a new end user and returns a token plus the path the
// client should land on (always profile setup for a fresh account).
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.SignUp(c.Request().Context(), ports.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		UserType: req.UserType,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("sign_up", "failure").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("sign_up", "success").Inc()

	return c.JSON(http.StatusCreated, authResponse{
		Token:    token,
		User:     user,
		Redirect: h.routeService.LandingPath(c.Request().Context(), user.ID),
	})
}

// SignIn authenticates a user and returns a token plus the computed landing
// path, so the client never re-implements the routing rules.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("sign_in", "failure").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("sign_in", "success").Inc()

	return c.JSON(http.StatusOK, authResponse{
		Token:    token,
		User:     user,
		Redirect: h.routeService.LandingPath(c.Request().Context(), user.ID),
	})
}

// SignOut acknowledges a sign-out. User tokens are stateless, so there is
// nothing to invalidate server-side; the client drops the token.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"redirect": domain.PathHome})
}
