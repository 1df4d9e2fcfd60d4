package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// RouteService resolves the data the pure gate needs (the profile row and
// the role-profile existence bit) and evaluates domain.Decide. Any fetch
// failure degrades to "profile missing": the gate must never grant dashboard
// access on ambiguous state.
type RouteService struct {
	profiles ports.ProfileRepository
	log      zerolog.Logger
}

func NewRouteService(profiles ports.ProfileRepository, log zerolog.Logger) *RouteService {
	return &RouteService{profiles: profiles, log: log}
}

// Resolve evaluates the gate for the given current path (route guard form).
func (s *RouteService) Resolve(ctx context.Context, userID, currentPath string) domain.RouteDecision {
	profile, roleProfileExists := s.load(ctx, userID)
	return domain.Decide(userID != "", profile, roleProfileExists, currentPath)
}

// LandingPath computes where a freshly signed-in user should land. The
// candidate dashboard is run back through the same gate, so the post-login
// redirect and the route guard can never disagree.
func (s *RouteService) LandingPath(ctx context.Context, userID string) string {
	profile, roleProfileExists := s.load(ctx, userID)
	candidate := domain.DashboardPath(profile, roleProfileExists)
	decision := domain.Decide(userID != "", profile, roleProfileExists, candidate)
	if decision.Action == domain.ActionRedirect {
		return decision.Path
	}
	return candidate
}

// load fetches the profile and role-profile existence, mapping every failure
// to the fail-safe "not there" reading.
func (s *RouteService) load(ctx context.Context, userID string) (*domain.Profile, bool) {
	if userID == "" {
		return nil, false
	}

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("profile fetch failed, treating as incomplete")
		}
		return nil, false
	}

	exists := false
	switch profile.UserType {
	case domain.UserTypePetSitter:
		if _, err := s.profiles.FindSitterProfile(ctx, userID); err == nil {
			exists = true
		} else if !errors.Is(err, domain.ErrRoleProfileNotFound) {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("sitter profile fetch failed, treating as missing")
		}
	case domain.UserTypePetShelter:
		if _, err := s.profiles.FindShelterProfile(ctx, userID); err == nil {
			exists = true
		} else if !errors.Is(err, domain.ErrRoleProfileNotFound) {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("shelter profile fetch failed, treating as missing")
		}
	}

	return profile, exists
}
