package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository implements ports.UserRepository. Email uniqueness is enforced
// by an index created in EnsureIndexes.
type UserRepository struct {
	c collection[domain.User]
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{c: newCollection[domain.User](db, collectionUsers, domain.ErrUserNotFound)}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if err := r.c.insert(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.c.findByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.c.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	users, err := r.c.findMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	out := make(map[string]*domain.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.c.replace(ctx, u.ID, u)
}
