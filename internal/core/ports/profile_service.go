package ports

import (
	"context"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// SaveProfileInput carries the step-1 profile setup form.
type SaveProfileInput struct {
	UserID   string
	UserType string
	Phone    string
	City     string
	Address  string
	Bio      string
}

// SaveSitterProfileInput carries the sitter step-2 form.
type SaveSitterProfileInput struct {
	UserID          string
	HourlyRate      float64
	ExperienceYears int
	Services        []string
	AcceptsDogs     bool
	AcceptsCats     bool
}

// SaveShelterProfileInput carries the shelter step-2 form.
type SaveShelterProfileInput struct {
	UserID         string
	ShelterName    string
	Capacity       int
	Website        string
	RegistrationID string
}

// CompletionStatus summarizes how far through profile setup a user is and
// where they belong once setup finishes.
type CompletionStatus struct {
	ProfileExists     bool
	ProfileComplete   bool
	RoleProfileExists bool
	Dashboard         string
}

// ProfileService implements profile setup and completeness reporting.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Save(ctx context.Context, input SaveProfileInput) (*domain.Profile, error)
	SaveSitterProfile(ctx context.Context, input SaveSitterProfileInput) (*domain.SitterProfile, error)
	SaveShelterProfile(ctx context.Context, input SaveShelterProfileInput) (*domain.ShelterProfile, error)
	CompletionStatus(ctx context.Context, userID string) (*CompletionStatus, error)
}
