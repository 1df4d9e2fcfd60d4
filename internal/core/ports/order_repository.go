package ports

import (
	"context"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// OrderFilter scopes an order listing. UserID is enforced by the service for
// non-admin callers.
type OrderFilter struct {
	UserID string
	Status string
	Page   int
	Limit  int
}

// OrderRepository defines persistence for storefront orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, int64, error)
	// UpdateStatus atomically sets the new status and appends a history entry.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, entry domain.OrderStatusHistoryEntry) error
}
