package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
	"github.com/chickensystem/restaurant-api/internal/pkg/token"
)

const minPasswordLength = 6

// AuthService implements registration, password and federated login, and
// the profile operations. It also resolves token subjects for the auth middleware.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" {
		return nil, domain.Invalidf("name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, domain.Invalidf("a valid email is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.Invalidf("password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           domain.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         domain.RoleUser,
		Status:       domain.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login checks a password and issues a token. Unknown emails, accounts without
// a password and wrong passwords all fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.HasPassword() || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return "", nil, domain.ErrUnauthorized
	}

	signed, err := token.Issue(user, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// FederatedLogin links a provider profile to an account by email, creating the
// account on first sight.
func (s *AuthService) FederatedLogin(ctx context.Context, profile ports.FederatedProfile) (string, *domain.User, error) {
	email := normalizeEmail(profile.Email)
	if email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if profile.Picture != "" && profile.Picture != user.ProfilePicture {
			user.ProfilePicture = profile.Picture
			user.UpdatedAt = time.Now().UTC()
			if err := s.users.Update(ctx, user); err != nil {
				return "", nil, err
			}
		}
	case errors.Is(err, domain.ErrNotFound):
		name := strings.TrimSpace(profile.DisplayName)
		if name == "" {
			name = email
		}
		now := time.Now().UTC()
		user = &domain.User{
			ID:             domain.NewID(),
			Name:           name,
			Email:          email,
			ProfilePicture: profile.Picture,
			Phone:          profile.Phone,
			Role:           domain.RoleUser,
			Status:         domain.UserActive,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return "", nil, err
		}
		s.logger.Info().Str("user_id", user.ID).Msg("user created from federated login")
	default:
		return "", nil, err
	}

	if !user.IsActive() {
		return "", nil, domain.ErrUnauthorized
	}
	signed, err := token.Issue(user, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// Resolve returns the active account behind a token subject.
func (s *AuthService) Resolve(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) Profile(ctx context.Context, caller domain.Caller) (*domain.User, error) {
	return s.users.FindByID(ctx, caller.UserID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, caller domain.Caller, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalidf("name cannot be empty")
		}
		user.Name = name
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.ProfilePicture != nil {
		user.ProfilePicture = strings.TrimSpace(*in.ProfilePicture)
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, domain.Invalidf("password must be at least %d characters", minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
