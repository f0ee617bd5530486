package ports

import "github.com/chickensystem/restaurant-api/internal/core/domain"

// PageResult is a page of items plus the total match count.
type PageResult[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

func NewPageResult[T any](items []T, total int64, page domain.Page) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}
}

// OrderLine is an order item with its product resolved. Product is nil when the
// product has since been removed from the catalogue.
type OrderLine struct {
	ProductID string
	Product   *domain.Product
	Quantity  int
	Price     float64
}

type OrderView struct {
	Order *domain.Order
	Owner *domain.UserSummary
	Lines []OrderLine
}

type PaymentView struct {
	Payment *domain.Payment
	Order   *domain.Order
	Owner   *domain.UserSummary
}

type ReservationView struct {
	Reservation *domain.Reservation
	Owner       *domain.UserSummary
}

type TestimonialView struct {
	Testimonial *domain.Testimonial
	Owner       *domain.UserSummary
}

type ActivityLogView struct {
	Entry *domain.ActivityLog
	Owner *domain.UserSummary
}
