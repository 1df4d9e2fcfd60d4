package ports

import (
	"context"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// ProductFilter carries all query parameters for listing catalog items.
type ProductFilter struct {
	Category string  // optional: exact category match
	Search   string  // optional: partial match on name
	MinPrice float64 // optional: price >= MinPrice
	MaxPrice float64 // optional: price <= MaxPrice (0 = unbounded)
	// ActiveOnly hides deactivated products; the storefront always sets it,
	// the back office does not.
	ActiveOnly bool
	Page       int
	Limit      int
}

// ProductRepository defines persistence for catalog items.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// BannerRepository defines persistence for promotional banners.
type BannerRepository interface {
	Create(ctx context.Context, b *domain.Banner) (*domain.Banner, error)
	// ListActive returns banners that are active and inside their display
	// window, ordered by position.
	ListActive(ctx context.Context) ([]*domain.Banner, error)
	List(ctx context.Context) ([]*domain.Banner, error)
	Update(ctx context.Context, b *domain.Banner) error
	Delete(ctx context.Context, id string) error
}
