package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

const collectionProducts = "products"

type ProductRepository struct {
	c collection[domain.Product]
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{c: newCollection[domain.Product](db, collectionProducts, domain.ErrProductNotFound)}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.c.insert(ctx, p)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.c.findByID(ctx, id)
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	products, err := r.c.findMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepository) List(ctx context.Context, filter ports.ProductFilter, page domain.Page) ([]*domain.Product, int64, error) {
	return r.c.list(ctx, productQuery(filter), page)
}

func productQuery(filter ports.ProductFilter) bson.M {
	q := bson.M{}
	if filter.Category != "" {
		q["category"] = filter.Category
	}
	if filter.Popular != nil {
		q["popular"] = *filter.Popular
	}
	return q
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.c.replace(ctx, p.ID, p)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}
