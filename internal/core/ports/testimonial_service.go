package ports

import (
	"context"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
)

type CreateTestimonialInput struct {
	Content string
	Rating  int
}

type TestimonialService interface {
	Create(ctx context.Context, caller domain.Caller, in CreateTestimonialInput) (*domain.Testimonial, error)
	// ListPublic never returns unapproved testimonials.
	ListPublic(ctx context.Context, page domain.Page) (*PageResult[TestimonialView], error)
	ListPending(ctx context.Context, caller domain.Caller, page domain.Page) (*PageResult[TestimonialView], error)
	Approve(ctx context.Context, caller domain.Caller, id string) (*domain.Testimonial, error)
}
