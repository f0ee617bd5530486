package ports

import (
	"context"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       string
	Category    string
	Popular     bool
}

type ProductService interface {
	List(ctx context.Context, filter ProductFilter, page domain.Page) (*PageResult[*domain.Product], error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, caller domain.Caller, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, caller domain.Caller, id string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}

type LocationInput struct {
	Name        string
	Address     string
	Coordinates domain.Coordinates
	Phone       string
	Hours       string
}

type LocationService interface {
	List(ctx context.Context, page domain.Page) (*PageResult[*domain.Location], error)
	Create(ctx context.Context, caller domain.Caller, in LocationInput) (*domain.Location, error)
	Update(ctx context.Context, caller domain.Caller, id string, in LocationInput) (*domain.Location, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}
