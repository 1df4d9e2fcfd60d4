package ports

import (
	"context"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// ProfileRepository defines persistence for base profiles and the
// role-specific step-2 records.
type ProfileRepository interface {
	FindByID(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error

	FindSitterProfile(ctx context.Context, userID string) (*domain.SitterProfile, error)
	UpsertSitterProfile(ctx context.Context, sp *domain.SitterProfile) error

	FindShelterProfile(ctx context.Context, userID string) (*domain.ShelterProfile, error)
	UpsertShelterProfile(ctx context.Context, sp *domain.ShelterProfile) error
}
