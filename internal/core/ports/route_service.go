package ports

import (
	"context"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// RouteService evaluates the profile-completeness gate for a signed-in user.
// Both consumers of the gate, the route guard endpoint and the post-login
// redirect, go through this single service so the rule set cannot drift.
type RouteService interface {
	// Resolve evaluates the gate for the given current path (guard form).
	Resolve(ctx context.Context, userID, currentPath string) domain.RouteDecision

	// LandingPath computes where a freshly signed-in user should land
	// (post-login form).
	LandingPath(ctx context.Context, userID string) string
}
