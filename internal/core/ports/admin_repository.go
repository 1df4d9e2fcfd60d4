package ports

import (
	"context"
	"time"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// AdminRepository defines persistence for back-office identities.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
}

// AdminSessionRepository defines persistence for minted admin sessions.
// Delete is idempotent: deleting a missing token is not an error.
type AdminSessionRepository interface {
	Insert(ctx context.Context, session *domain.AdminSession) error
	Find(ctx context.Context, token string) (*domain.AdminSession, error)
	Delete(ctx context.Context, token string) error
}

// ActivityFilter narrows an audit trail listing.
type ActivityFilter struct {
	AdminID string    // empty = all admins
	Action  string    // optional exact match
	From    time.Time // optional: logged_at >= From
	To      time.Time // optional: logged_at <= To
	Limit   int       // capped by the service
}

// ActivityRepository persists and reads the admin audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityEntry) error
	List(ctx context.Context, filter ActivityFilter) ([]domain.ActivityEntry, error)
}
