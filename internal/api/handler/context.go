package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// ctxIdentity extracts the user claims injected by the Auth middleware and
// performs a fast-fail check before any service call: user_id must be
// non-empty (presence proves the middleware ran).
func ctxIdentity(c echo.Context) (userID, userType string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userType, _ = c.Get("user_type").(string)
	return userID, userType, nil
}

// ctxAdmin extracts the admin injected by the AdminSession middleware.
func ctxAdmin(c echo.Context) (*domain.Admin, error) {
	admin, _ := c.Get("admin").(*domain.Admin)
	if admin == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing admin session")
	}
	return admin, nil
}
