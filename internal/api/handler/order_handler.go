package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/petconnect/marketplace/internal/api/metrics"
	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// OrderHandler handles storefront checkout and the order lifecycle for both
// buyers and the back office.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type checkoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type checkoutRequest struct {
	Items []checkoutItemRequest `json:"items" validate:"required,min=1,dive"`
}

type orderTransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=paid shipped delivered cancelled"`
	Notes  string `json:"notes"`
}

type listOrdersResponse struct {
	Data       []*domain.Order    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Checkout places an order for the authenticated user. Prices are resolved
// server-side from the catalog; payment is simulated.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkoutRequest  true  "Cart items"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/orders [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.CheckoutInput{UserID: userID}
	for _, item := range req.Items {
		input.Items = append(input.Items, ports.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.Checkout(c.Request().Context(), input)
	if err != nil {
		return err
	}
	metrics.OrdersCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, order)
}

// Get returns one of the caller's orders.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  map[string]string
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.Request().Context(), c.Param("id"), userID, false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// List returns the caller's orders, newest first.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listOrdersResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	filter := ports.OrderFilter{
		UserID: userID,
		Status: c.QueryParam("status"),
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.orders.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listOrdersResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Cancel lets a buyer cancel their own order while the state machine allows.
//
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	order, err := h.orders.Transition(c.Request().Context(), ports.OrderTransitionInput{
		OrderID: c.Param("id"),
		ActorID: userID,
		Status:  domain.OrderStatusCancelled,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// AdminList is the back-office listing across all users.
func (h *OrderHandler) AdminList(c echo.Context) error {
	filter := ports.OrderFilter{
		UserID: c.QueryParam("user_id"),
		Status: c.QueryParam("status"),
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.orders.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listOrdersResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// AdminTransition moves an order through its fulfilment lifecycle.
//
// @Summary      Transition an order status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Order id"
// @Param        body  body      orderTransitionRequest  true  "Target status"
// @Success      200   {object}  domain.Order
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/admin/orders/{id}/status [post]
func (h *OrderHandler) AdminTransition(c echo.Context) error {
	admin, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req orderTransitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.Transition(c.Request().Context(), ports.OrderTransitionInput{
		OrderID: c.Param("id"),
		ActorID: admin.ID,
		Admin:   true,
		Status:  domain.OrderStatus(req.Status),
		Notes:   req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
