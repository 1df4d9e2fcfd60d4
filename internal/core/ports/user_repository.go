package ports

import (
	"context"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// UserRepository defines persistence for end-user identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
