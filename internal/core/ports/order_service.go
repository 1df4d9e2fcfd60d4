package ports

import (
	"context"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// OrderItemInput is one line of a checkout request.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CheckoutInput carries a storefront checkout. Prices are never taken from
// the client; the service resolves them from the catalog.
type CheckoutInput struct {
	UserID string
	Items  []OrderItemInput
}

// OrderTransitionInput carries a status change request.
type OrderTransitionInput struct {
	OrderID string
	// ActorID must match the order owner unless Admin is set.
	ActorID string
	Admin   bool
	Status  domain.OrderStatus
	Notes   string
}

// OrderListResult is a paged order listing.
type OrderListResult struct {
	Items      []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService implements checkout and order lifecycle management.
type OrderService interface {
	Checkout(ctx context.Context, input CheckoutInput) (*domain.Order, error)
	Get(ctx context.Context, id, actorID string, admin bool) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) (*OrderListResult, error)
	Transition(ctx context.Context, input OrderTransitionInput) (*domain.Order, error)
}
