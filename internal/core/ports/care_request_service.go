package ports

import (
	"context"
	"time"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// CreateCareRequestInput carries the owner's booking form.
type CreateCareRequestInput struct {
	OwnerID      string
	ProviderID   string
	ProviderType string
	PetName      string
	PetType      string
	StartDate    time.Time
	EndDate      time.Time
	Notes        string
}

// CareTransitionInput carries a status change request. ActorID and ActorRole
// are taken from the authenticated identity, never from the payload.
type CareTransitionInput struct {
	RequestID string
	ActorID   string
	ActorRole string
	Status    domain.CareRequestStatus
	Notes     string
}

// CareRequestResult is a paged listing of care requests.
type CareRequestResult struct {
	Items      []*domain.CareRequest
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CareRequestService implements the owner/provider care request flows.
type CareRequestService interface {
	Create(ctx context.Context, input CreateCareRequestInput) (*domain.CareRequest, error)
	Get(ctx context.Context, id, actorID string) (*domain.CareRequest, error)
	List(ctx context.Context, filter CareRequestFilter) (*CareRequestResult, error)
	Transition(ctx context.Context, input CareTransitionInput) (*domain.CareRequest, error)
}
