package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petconnect/marketplace/internal/api/metrics"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// RouteHandler exposes the routing gate to authenticated clients. The client
// asks "may I stay on this path?" and renders whatever the server decides.
type RouteHandler struct {
	routeService ports.RouteService
}

func NewRouteHandler(routeService ports.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

type routeDecisionResponse struct {
	Action string `json:"action"`
	Path   string `json:"path,omitempty"`
}

// Decide evaluates the profile-completeness gate for the current path.
//
// @Summary      Resolve the routing gate for a path
// @Tags         routing
// @Produce      json
// @Security     BearerAuth
// @Param        path  query     string  true  "Current client path (e.g. /pet-owner)"
// @Success      200   {object}  routeDecisionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/route/decision [get]
func (h *RouteHandler) Decide(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path query parameter is required")
	}

	decision := h.routeService.Resolve(c.Request().Context(), userID, path)
	metrics.RouteDecisionsTotal.WithLabelValues(string(decision.Action)).Inc()

	return c.JSON(http.StatusOK, routeDecisionResponse{
		Action: string(decision.Action),
		Path:   decision.Path,
	})
}
