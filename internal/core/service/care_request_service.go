package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// CareRequestService implements the owner/provider booking flows.
type CareRequestService struct {
	requests ports.CareRequestRepository
	profiles ports.ProfileRepository
	log      zerolog.Logger
}

func NewCareRequestService(requests ports.CareRequestRepository, profiles ports.ProfileRepository, log zerolog.Logger) *CareRequestService {
	return &CareRequestService{requests: requests, profiles: profiles, log: log}
}

// Create opens a pending care request against a sitter or shelter. The
// provider must exist and carry the declared role.
func (s *CareRequestService) Create(ctx context.Context, input ports.CreateCareRequestInput) (*domain.CareRequest, error) {
	if input.ProviderType != domain.UserTypePetSitter && input.ProviderType != domain.UserTypePetShelter {
		return nil, domain.ErrInvalidUserType
	}
	if input.PetName == "" || input.EndDate.Before(input.StartDate) {
		return nil, fmt.Errorf("%w: invalid booking window", domain.ErrInvalidCareTransition)
	}

	provider, err := s.profiles.FindByID(ctx, input.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("resolve provider: %w", err)
	}
	if provider.UserType != input.ProviderType {
		return nil, domain.ErrInvalidUserType
	}

	now := time.Now().UTC()
	cr := &domain.CareRequest{
		OwnerID:      input.OwnerID,
		ProviderID:   input.ProviderID,
		ProviderType: input.ProviderType,
		PetName:      input.PetName,
		PetType:      input.PetType,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Notes:        input.Notes,
		Status:       domain.CareStatusPending,
		StatusHistory: []domain.CareStatusHistoryEntry{
			{Status: domain.CareStatusPending, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.requests.Create(ctx, cr); err != nil {
		s.log.Error().Err(err).Msg("failed to create care request")
		return nil, err
	}

	s.log.Info().Str("request_id", cr.ID).Str("owner_id", cr.OwnerID).Str("provider_id", cr.ProviderID).Msg("care request created")
	return cr, nil
}

// Get returns a care request visible only to its two parties.
func (s *CareRequestService) Get(ctx context.Context, id, actorID string) (*domain.CareRequest, error) {
	cr, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cr.OwnerID != actorID && cr.ProviderID != actorID {
		return nil, domain.ErrForbidden
	}
	return cr, nil
}

func (s *CareRequestService) List(ctx context.Context, filter ports.CareRequestFilter) (*ports.CareRequestResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.CareRequestResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// Transition applies a status change. Owners may only cancel; providers may
// accept, decline, or complete. The state machine rejects everything else.
func (s *CareRequestService) Transition(ctx context.Context, input ports.CareTransitionInput) (*domain.CareRequest, error) {
	cr, err := s.requests.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	switch input.ActorID {
	case cr.OwnerID:
		if input.Status != domain.CareStatusCancelled {
			return nil, domain.ErrForbidden
		}
	case cr.ProviderID:
		if input.Status == domain.CareStatusCancelled {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	if !cr.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidCareTransition, cr.Status, input.Status)
	}

	entry := domain.CareStatusHistoryEntry{
		Status:    input.Status,
		Timestamp: time.Now().UTC(),
		Notes:     input.Notes,
	}
	if err := s.requests.UpdateStatus(ctx, cr.ID, input.Status, entry); err != nil {
		return nil, err
	}

	cr.Status = input.Status
	cr.StatusHistory = append(cr.StatusHistory, entry)
	cr.UpdatedAt = entry.Timestamp
	return cr, nil
}
