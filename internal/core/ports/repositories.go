package ports

import (
	"context"
	"time"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

// UserRepository persists accounts. Email is unique.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the users that exist, keyed by id. Missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

// ProductFilter narrows catalogue listings. Zero values mean no filter.
type ProductFilter struct {
	Category string
	Popular  *bool
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error)
	List(ctx context.Context, filter ProductFilter, page domain.Page) ([]*domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// OwnerFilter scopes a listing to one user; empty UserID lists everything.
type OwnerFilter struct {
	UserID string
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Order, error)
	List(ctx context.Context, filter OwnerFilter, page domain.Page) ([]*domain.Order, int64, error)
	// UpdateStatus is conditional on the stored status allowing the move and
	// returns domain.ErrInvalidTransition when it no longer does.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) (*domain.Order, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context, filter OwnerFilter, page domain.Page) ([]*domain.Payment, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, transactionID string, at time.Time) (*domain.Payment, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context, filter OwnerFilter, page domain.Page) ([]*domain.Reservation, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, at time.Time) (*domain.Reservation, error)
}

type TestimonialRepository interface {
	Create(ctx context.Context, t *domain.Testimonial) error
	// ListByApproval returns only testimonials whose approved flag equals approved.
	ListByApproval(ctx context.Context, approved bool, page domain.Page) ([]*domain.Testimonial, int64, error)
	Approve(ctx context.Context, id string, at time.Time) (*domain.Testimonial, error)
}

type LocationRepository interface {
	Create(ctx context.Context, l *domain.Location) error
	FindByID(ctx context.Context, id string) (*domain.Location, error)
	List(ctx context.Context, page domain.Page) ([]*domain.Location, int64, error)
	Update(ctx context.Context, l *domain.Location) error
	Delete(ctx context.Context, id string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string, page domain.Page) ([]*domain.Notification, int64, error)
	MarkRead(ctx context.Context, id string) (*domain.Notification, error)
}

// ActivityLogRepository is append-only: there is no update or delete.
type ActivityLogRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLog) error
	// List returns entries newest first.
	List(ctx context.Context, filter OwnerFilter, page domain.Page) ([]*domain.ActivityLog, int64, error)
}
