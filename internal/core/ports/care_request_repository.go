package ports

import (
	"context"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// CareRequestFilter scopes a care request listing to one side of the
// marketplace. Exactly one of OwnerID / ProviderID is normally set.
type CareRequestFilter struct {
	OwnerID    string
	ProviderID string
	Status     string
	Page       int
	Limit      int
}

// CareRequestRepository defines persistence for care requests.
type CareRequestRepository interface {
	Create(ctx context.Context, cr *domain.CareRequest) error
	FindByID(ctx context.Context, id string) (*domain.CareRequest, error)
	List(ctx context.Context, filter CareRequestFilter) ([]*domain.CareRequest, int64, error)
	// UpdateStatus atomically sets the new status and appends a history entry.
	UpdateStatus(ctx context.Context, id string, status domain.CareRequestStatus, entry domain.CareStatusHistoryEntry) error
}
