package ports

import (
	"context"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// UpdateProfileInput carries optional profile changes; nil fields are left untouched.
type UpdateProfileInput struct {
	Name           *string
	Phone          *string
	ProfilePicture *string
	Password       *string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// FederatedLogin finds or creates the account for a provider profile and issues a token.
	FederatedLogin(ctx context.Context, profile FederatedProfile) (string, *domain.User, error)
	Profile(ctx context.Context, caller domain.Caller) (*domain.User, error)
	UpdateProfile(ctx context.Context, caller domain.Caller, in UpdateProfileInput) (*domain.User, error)
}
