package ports

import (
	"context"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// AdminSignInInput carries the admin login form plus the request metadata
// recorded on the session and the audit trail.
type AdminSignInInput struct {
	Email     string
	Password  string
	IP        string
	UserAgent string
}

// AdminSignInResult is the single-round-trip login response: credential
// verification, session minting, and identity in one call.
type AdminSignInResult struct {
	Token string
	Admin *domain.Admin
}

// CreateAdminInput carries the co-admin creation form. Creator is the cached
// identity of the caller; the service re-checks super-admin status itself.
type CreateAdminInput struct {
	Creator     *domain.Admin
	Name        string
	Email       string
	Password    string
	Permissions []string
}

// AdminService implements back-office authentication and administration.
type AdminService interface {
	SignIn(ctx context.Context, input AdminSignInInput) (*AdminSignInResult, error)

	// ValidateSession checks the token server-side. Expired or unknown
	// sessions are purged and reported invalid; the caller must never trust
	// a cached "is logged in" flag instead of calling this.
	ValidateSession(ctx context.Context, token string) (*domain.Admin, error)

	// SignOut invalidates the session best-effort and never fails the caller.
	SignOut(ctx context.Context, token string)

	CreateAdmin(ctx context.Context, input CreateAdminInput) (*domain.Admin, error)
	ListActivity(ctx context.Context, filter ActivityFilter) ([]domain.ActivityEntry, error)
}
