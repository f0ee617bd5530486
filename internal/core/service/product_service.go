package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

// ProductService manages the catalogue. Reads are public, writes are admin only.
type ProductService struct {
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewProductService(products ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

func (s *ProductService) List(ctx context.Context, filter ports.ProductFilter, page domain.Page) (*ports.PageResult[*domain.Product], error) {
	items, total, err := s.products.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return ports.NewPageResult(items, total, page), nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, caller domain.Caller, in ports.ProductInput) (*domain.Product, error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Product{ID: domain.NewID(), CreatedAt: now}
	applyProduct(p, in, now)

	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", p.ID).Str("admin_id", caller.UserID).Msg("product created")
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, caller domain.Caller, id string, in ports.ProductInput) (*domain.Product, error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProduct(p, in, time.Now().UTC())

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Str("admin_id", caller.UserID).Msg("product deleted")
	return nil
}

func validateProduct(in ports.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalidf("name is required")
	}
	if !domain.Money(in.Price).IsPositive() {
		return domain.Invalidf("price must be greater than 0")
	}
	return nil
}

func applyProduct(p *domain.Product, in ports.ProductInput, now time.Time) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = domain.Money(in.Price).InexactFloat64()
	p.Image = in.Image
	p.Category = in.Category
	p.Popular = in.Popular
	p.UpdatedAt = now
}
