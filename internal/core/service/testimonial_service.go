package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

type TestimonialService struct {
	testimonials ports.TestimonialRepository
	users        ports.UserRepository
	audit        *AuditTrail
	logger       zerolog.Logger
}

func NewTestimonialService(
	testimonials ports.TestimonialRepository,
	users ports.UserRepository,
	audit *AuditTrail,
	logger zerolog.Logger,
) *TestimonialService {
	return &TestimonialService{testimonials: testimonials, users: users, audit: audit, logger: logger}
}

// Create stores an unapproved testimonial; it stays hidden until moderated.
func (s *TestimonialService) Create(ctx context.Context, caller domain.Caller, in ports.CreateTestimonialInput) (*domain.Testimonial, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.Invalidf("content is required")
	}
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		return nil, domain.Invalidf("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}

	now := time.Now().UTC()
	t := &domain.Testimonial{
		ID:        domain.NewID(),
		UserID:    caller.UserID,
		Content:   content,
		Rating:    in.Rating,
		Approved:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.audit.Mutate(ctx,
		func(ctx context.Context) error { return s.testimonials.Create(ctx, t) },
		func() domain.ActivityLog { return domain.TestimonialCreatedActivity(t, now) },
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestimonialService) ListPublic(ctx context.Context, page domain.Page) (*ports.PageResult[ports.TestimonialView], error) {
	return s.list(ctx, true, page)
}

func (s *TestimonialService) ListPending(ctx context.Context, caller domain.Caller, page domain.Page) (*ports.PageResult[ports.TestimonialView], error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	return s.list(ctx, false, page)
}

func (s *TestimonialService) list(ctx context.Context, approved bool, page domain.Page) (*ports.PageResult[ports.TestimonialView], error) {
	items, total, err := s.testimonials.ListByApproval(ctx, approved, page)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, t := range items {
		ids = append(ids, t.UserID)
	}
	owners, err := ownerSummaries(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ports.TestimonialView, 0, len(items))
	for _, t := range items {
		var owner *domain.UserSummary
		if o := owners[t.UserID]; o != nil {
			// public listings expose the author's name only
			owner = &domain.UserSummary{ID: o.ID, Name: o.Name}
		}
		views = append(views, ports.TestimonialView{Testimonial: t, Owner: owner})
	}
	return ports.NewPageResult(views, total, page), nil
}

// Approve publishes a testimonial. There is no reject operation.
func (s *TestimonialService) Approve(ctx context.Context, caller domain.Caller, id string) (*domain.Testimonial, error) {
	if err := caller.Authorize(domain.RequireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var approved *domain.Testimonial
	err := s.audit.Mutate(ctx,
		func(ctx context.Context) error {
			var err error
			approved, err = s.testimonials.Approve(ctx, id, now)
			return err
		},
		func() domain.ActivityLog { return domain.TestimonialApprovedActivity(caller.UserID, approved, now) },
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("testimonial_id", id).Str("admin_id", caller.UserID).Msg("testimonial approved")
	return approved, nil
}
