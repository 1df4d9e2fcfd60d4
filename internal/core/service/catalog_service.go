package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CatalogService implements the storefront catalog and its back-office CRUD.
type CatalogService struct {
	products ports.ProductRepository
	banners  ports.BannerRepository
	log      zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, banners ports.BannerRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, banners: banners, log: log}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter ports.ProductFilter) (*ports.ProductListResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ProductListResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) SaveProduct(ctx context.Context, input ports.SaveProductInput) (*domain.Product, error) {
	now := time.Now().UTC()

	if input.ID == "" {
		product := &domain.Product{
			Name:        input.Name,
			Description: input.Description,
			Category:    input.Category,
			Price:       input.Price,
			Stock:       input.Stock,
			ImageURL:    input.ImageURL,
			Active:      input.Active,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		created, err := s.products.Create(ctx, product)
		if err != nil {
			return nil, err
		}
		s.log.Info().Str("product_id", created.ID).Msg("product created")
		return created, nil
	}

	existing, err := s.products.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	existing.Name = input.Name
	existing.Description = input.Description
	existing.Category = input.Category
	existing.Price = input.Price
	existing.Stock = input.Stock
	existing.ImageURL = input.ImageURL
	existing.Active = input.Active
	existing.UpdatedAt = now

	if err := s.products.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *CatalogService) ActiveBanners(ctx context.Context) ([]*domain.Banner, error) {
	return s.banners.ListActive(ctx)
}

func (s *CatalogService) ListBanners(ctx context.Context) ([]*domain.Banner, error) {
	return s.banners.List(ctx)
}

func (s *CatalogService) SaveBanner(ctx context.Context, input ports.SaveBannerInput) (*domain.Banner, error) {
	if input.ID == "" {
		banner := &domain.Banner{
			Title:     input.Title,
			ImageURL:  input.ImageURL,
			LinkURL:   input.LinkURL,
			Position:  input.Position,
			Active:    input.Active,
			StartsAt:  input.StartsAt,
			EndsAt:    input.EndsAt,
			CreatedAt: time.Now().UTC(),
		}
		return s.banners.Create(ctx, banner)
	}

	banner := &domain.Banner{
		ID:       input.ID,
		Title:    input.Title,
		ImageURL: input.ImageURL,
		LinkURL:  input.LinkURL,
		Position: input.Position,
		Active:   input.Active,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
	}
	if err := s.banners.Update(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *CatalogService) DeleteBanner(ctx context.Context, id string) error {
	return s.banners.Delete(ctx, id)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
