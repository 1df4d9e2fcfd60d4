package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/petconnect/marketplace/internal/api/metrics"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// AdminSession validates the opaque admin session token on every request and
// injects the resolved admin into context. Tokens are checked server-side;
// there is no client-trusted "logged in" state.
func AdminSession(admins ports.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			admin, err := admins.ValidateSession(c.Request().Context(), token)
			if err != nil {
				metrics.AdminSessionValidationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "session invalid or expired")
			}
			metrics.AdminSessionValidationsTotal.WithLabelValues("valid").Inc()

			c.Set("admin", admin)
			c.Set("session_token", token)

			return next(c)
		}
	}
}

func sessionToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
