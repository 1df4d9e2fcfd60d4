package ports

import (
	"context"
	"time"

	"github.com/petconnect/marketplace/internal/core/domain"
)

// ProductListResult is a paged catalog listing.
type ProductListResult struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// SaveProductInput carries the back-office product form. An empty ID means
// create; a non-empty ID means update.
type SaveProductInput struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       float64
	Stock       int
	ImageURL    string
	Active      bool
}

// SaveBannerInput carries the back-office banner form.
type SaveBannerInput struct {
	ID       string
	Title    string
	ImageURL string
	LinkURL  string
	Position int
	Active   bool
	StartsAt time.Time
	EndsAt   time.Time
}

// CatalogService implements the storefront catalog and its administration.
type CatalogService interface {
	ListProducts(ctx context.Context, filter ProductFilter) (*ProductListResult, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SaveProduct(ctx context.Context, input SaveProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ActiveBanners(ctx context.Context) ([]*domain.Banner, error)
	ListBanners(ctx context.Context) ([]*domain.Banner, error)
	SaveBanner(ctx context.Context, input SaveBannerInput) (*domain.Banner, error)
	DeleteBanner(ctx context.Context, id string) error
}
