package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// ProfileService implements profile setup (step 1 and step 2) and the
// completion report used by setup screens.
type ProfileService struct {
	repo ports.ProfileRepository
	log  zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.repo.FindByID(ctx, userID)
}

// Save upserts the base profile. The role is fixed here; changing it later
// re-runs the completeness gate naturally since the role profile for the new
// role will not exist yet.
func (s *ProfileService) Save(ctx context.Context, input ports.SaveProfileInput) (*domain.Profile, error) {
	if !domain.ValidUserType(input.UserType) {
		return nil, domain.ErrInvalidUserType
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:        input.UserID,
		UserType:  input.UserType,
		Phone:     input.Phone,
		City:      input.City,
		Address:   input.Address,
		Bio:       input.Bio,
		UpdatedAt: now,
	}
	if existing, err := s.repo.FindByID(ctx, input.UserID); err == nil {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", input.UserID).Str("user_type", input.UserType).Msg("profile saved")
	return profile, nil
}

func (s *ProfileService) SaveSitterProfile(ctx context.Context, input ports.SaveSitterProfileInput) (*domain.SitterProfile, error) {
	if err := s.requireRole(ctx, input.UserID, domain.UserTypePetSitter); err != nil {
		return nil, err
	}

	sp := &domain.SitterProfile{
		UserID:          input.UserID,
		HourlyRate:      input.HourlyRate,
		ExperienceYears: input.ExperienceYears,
		Services:        input.Services,
		AcceptsDogs:     input.AcceptsDogs,
		AcceptsCats:     input.AcceptsCats,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.UpsertSitterProfile(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *ProfileService) SaveShelterProfile(ctx context.Context, input ports.SaveShelterProfileInput) (*domain.ShelterProfile, error) {
	if err := s.requireRole(ctx, input.UserID, domain.UserTypePetShelter); err != nil {
		return nil, err
	}

	sp := &domain.ShelterProfile{
		UserID:         input.UserID,
		ShelterName:    input.ShelterName,
		Capacity:       input.Capacity,
		Website:        input.Website,
		RegistrationID: input.RegistrationID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.UpsertShelterProfile(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// CompletionStatus reports setup progress and the eventual dashboard. It
// never fails on a missing profile; the zero report is the answer.
func (s *ProfileService) CompletionStatus(ctx context.Context, userID string) (*ports.CompletionStatus, error) {
	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return &ports.CompletionStatus{Dashboard: domain.PathProfileSetup}, nil
		}
		return nil, err
	}

	status := &ports.CompletionStatus{
		ProfileExists:   true,
		ProfileComplete: profile.Complete(),
	}

	switch profile.UserType {
	case domain.UserTypePetSitter:
		if _, err := s.repo.FindSitterProfile(ctx, userID); err == nil {
			status.RoleProfileExists = true
		}
	case domain.UserTypePetShelter:
		if _, err := s.repo.FindShelterProfile(ctx, userID); err == nil {
			status.RoleProfileExists = true
		}
	default:
		// Owners have no step-2 record.
		status.RoleProfileExists = true
	}

	status.Dashboard = domain.DashboardPath(profile, status.RoleProfileExists)
	return status, nil
}

// requireRole ensures the step-2 record matches the role on the base profile.
func (s *ProfileService) requireRole(ctx context.Context, userID, role string) error {
	profile, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if profile.UserType != role {
		return domain.ErrForbidden
	}
	return nil
}
