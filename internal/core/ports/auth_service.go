package ports

import (
	"context"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// SignUpInput carries the end-user registration form.
type SignUpInput struct {
	Email    string
	Password string
	FullName string
	// UserType is the role declared at signup. Optional: the authoritative
	// role is fixed during profile setup.
	UserType string
}

// AuthService implements end-user registration and login.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (string, *domain.User, error)
	SignIn(ctx context.Context, email, password string) (string, *domain.User, error)
}
