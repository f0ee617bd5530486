package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var errStubStore = errors.New("stub store failure")

// paginate slices items the way the Mongo repositories apply skip and limit.
func paginate[T any](items []T, p domain.Page) []T {
	skip := int(p.Skip())
	if skip >= len(items) {
		return []T{}
	}
	end := skip + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

type stubUserRepo struct {
	byID map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.byID[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			clone := *u
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

type stubProductRepo struct {
	byID map[string]*domain.Product
}

func newStubProductRepo(products ...*domain.Product) *stubProductRepo {
	r := &stubProductRepo{byID: make(map[string]*domain.Product)}
	for _, p := range products {
		clone := *p
		r.byID[p.ID] = &clone
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Product, error) {
	out := make(map[string]*domain.Product)
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			clone := *p
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubProductRepo) List(_ context.Context, f ports.ProductFilter, p domain.Page) ([]*domain.Product, int64, error) {
	var matched []*domain.Product
	for _, prod := range r.byID {
		if f.Category != "" && prod.Category != f.Category {
			continue
		}
		if f.Popular != nil && prod.Popular != *f.Popular {
			continue
		}
		clone := *prod
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubOrderRepo struct {
	items     []*domain.Order
	createErr error
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *o
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range r.items {
		if o.ID == id {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Order, error) {
	out := make(map[string]*domain.Order)
	for _, id := range ids {
		if o, err := r.FindByID(ctx, id); err == nil {
			out[id] = o
		}
	}
	return out, nil
}

// List returns newest first, like the Mongo repository.
func (r *stubOrderRepo) List(_ context.Context, f ports.OwnerFilter, p domain.Page) ([]*domain.Order, int64, error) {
	var matched []*domain.Order
	for i := len(r.items) - 1; i >= 0; i-- {
		if f.UserID != "" && r.items[i].UserID != f.UserID {
			continue
		}
		clone := *r.items[i]
		matched = append(matched, &clone)
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, at time.Time) (*domain.Order, error) {
	for _, o := range r.items {
		if o.ID == id {
			if !o.Status.CanTransitionTo(status) {
				return nil, fmt.Errorf("order status: %w", domain.ErrInvalidTransition)
			}
			o.Status = status
			o.UpdatedAt = at
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

type stubPaymentRepo struct {
	items []*domain.Payment
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) error {
	clone := *p
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id string) (*domain.Payment, error) {
	for _, p := range r.items {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (r *stubPaymentRepo) List(_ context.Context, f ports.OwnerFilter, p domain.Page) ([]*domain.Payment, int64, error) {
	var matched []*domain.Payment
	for i := len(r.items) - 1; i >= 0; i-- {
		if f.UserID != "" && r.items[i].UserID != f.UserID {
			continue
		}
		clone := *r.items[i]
		matched = append(matched, &clone)
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *stubPaymentRepo) UpdateStatus(_ context.Context, id string, status domain.PaymentStatus, transactionID string, at time.Time) (*domain.Payment, error) {
	for _, p := range r.items {
		if p.ID == id {
			if !p.Status.CanTransitionTo(status) {
				return nil, fmt.Errorf("payment status: %w", domain.ErrInvalidTransition)
			}
			p.Status = status
			if transactionID != "" {
				p.TransactionID = transactionID
			}
			p.UpdatedAt = at
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

type stubReservationRepo struct {
	items []*domain.Reservation
}

func (r *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) error {
	clone := *res
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubReservationRepo) FindByID(_ context.Context, id string) (*domain.Reservation, error) {
	for _, res := range r.items {
		if res.ID == id {
			clone := *res
			return &clone, nil
		}
	}
	return nil, domain.ErrReservationNotFound
}

func (r *stubReservationRepo) List(_ context.Context, f ports.OwnerFilter, p domain.Page) ([]*domain.Reservation, int64, error) {
	var matched []*domain.Reservation
	for i := len(r.items) - 1; i >= 0; i-- {
		if f.UserID != "" && r.items[i].UserID != f.UserID {
			continue
		}
		clone := *r.items[i]
		matched = append(matched, &clone)
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *stubReservationRepo) UpdateStatus(_ context.Context, id string, status domain.ReservationStatus, at time.Time) (*domain.Reservation, error) {
	for _, res := range r.items {
		if res.ID == id {
			if !res.Status.CanTransitionTo(status) {
				return nil, fmt.Errorf("reservation status: %w", domain.ErrInvalidTransition)
			}
			res.Status = status
			res.UpdatedAt = at
			clone := *res
			return &clone, nil
		}
	}
	return nil, domain.ErrReservationNotFound
}

type stubTestimonialRepo struct {
	items []*domain.Testimonial
}

func (r *stubTestimonialRepo) Create(_ context.Context, t *domain.Testimonial) error {
	clone := *t
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubTestimonialRepo) ListByApproval(_ context.Context, approved bool, p domain.Page) ([]*domain.Testimonial, int64, error) {
	var matched []*domain.Testimonial
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].Approved != approved {
			continue
		}
		clone := *r.items[i]
		matched = append(matched, &clone)
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *stubTestimonialRepo) Approve(_ context.Context, id string, at time.Time) (*domain.Testimonial, error) {
	for _, t := range r.items {
		if t.ID == id {
			t.Approved = true
			t.UpdatedAt = at
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTestimonialNotFound
}

type stubLocationRepo struct {
	byID map[string]*domain.Location
}

func newStubLocationRepo() *stubLocationRepo {
	return &stubLocationRepo{byID: make(map[string]*domain.Location)}
}

func (r *stubLocationRepo) Create(_ context.Context, l *domain.Location) error {
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

func (r *stubLocationRepo) FindByID(_ context.Context, id string) (*domain.Location, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrLocationNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubLocationRepo) List(_ context.Context, p domain.Page) ([]*domain.Location, int64, error) {
	var all []*domain.Location
	for _, l := range r.byID {
		clone := *l
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, p), int64(len(all)), nil
}

func (r *stubLocationRepo) Update(_ context.Context, l *domain.Location) error {
	if _, ok := r.byID[l.ID]; !ok {
		return domain.ErrLocationNotFound
	}
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

func (r *stubLocationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrLocationNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubNotificationRepo struct {
	items []*domain.Notification
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	clone := *n
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id string) (*domain.Notification, error) {
	for _, n := range r.items {
		if n.ID == id {
			clone := *n
			return &clone, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID string, p domain.Page) ([]*domain.Notification, int64, error) {
	var matched []*domain.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID != userID {
			continue
		}
		clone := *r.items[i]
		matched = append(matched, &clone)
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id string) (*domain.Notification, error) {
	for _, n := range r.items {
		if n.ID == id {
			n.Read = true
			clone := *n
			return &clone, nil
		}
	}
	return nil, domain.ErrNotificationNotFound
}

type stubActivityRepo struct {
	mu        sync.Mutex
	entries   []*domain.ActivityLog
	appendErr error
}

func (r *stubActivityRepo) Append(_ context.Context, e *domain.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	clone := *e
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubActivityRepo) List(_ context.Context, f ports.OwnerFilter, p domain.Page) ([]*domain.ActivityLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.ActivityLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		if f.UserID != "" && r.entries[i].UserID != f.UserID {
			continue
		}
		clone := *r.entries[i]
		matched = append(matched, &clone)
	}
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *stubActivityRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

// ---------------------------------------------------------------------------
// Infrastructure stubs
// ---------------------------------------------------------------------------

// stubTransactor runs fn inline; atomic only changes how AuditTrail treats a
// failed audit insert.
type stubTransactor struct {
	atomic bool
	calls  int
}

func (t *stubTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func (t *stubTransactor) Atomic() bool { return t.atomic }

type stubOutbox struct {
	entries []domain.ActivityLog
}

func (o *stubOutbox) Enqueue(e domain.ActivityLog) { o.entries = append(o.entries, e) }

type stubPublisher struct {
	published []domain.ActivityLog
}

func (p *stubPublisher) Publish(_ context.Context, e domain.ActivityLog) {
	p.published = append(p.published, e)
}

// stubIdempotency mirrors the Redis store: "" marks a claim still in progress.
type stubIdempotency struct {
	mu       sync.Mutex
	keys     map[string]string
	claimErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Claim(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimErr != nil {
		return "", false, s.claimErr
	}
	if id, ok := s.keys[scope+"/"+key]; ok {
		return id, false, nil
	}
	s.keys[scope+"/"+key] = ""
	return "", true, nil
}

func (s *stubIdempotency) Complete(_ context.Context, scope, key, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[scope+"/"+key] = id
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[scope+"/"+key] == "" {
		delete(s.keys, scope+"/"+key)
	}
	return nil
}

func (s *stubIdempotency) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var (
	alice = &domain.User{ID: "u-alice", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser, Status: domain.UserActive}
	bob   = &domain.User{ID: "u-bob", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser, Status: domain.UserActive}
	admin = &domain.User{ID: "u-admin", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, Status: domain.UserActive}

	aliceCaller = domain.Caller{UserID: alice.ID, Role: domain.RoleUser}
	bobCaller   = domain.Caller{UserID: bob.ID, Role: domain.RoleUser}
	adminCaller = domain.Caller{UserID: admin.ID, Role: domain.RoleAdmin}

	pollo   = &domain.Product{ID: "p-pollo", Name: "Pollo a la brasa", Price: 10.15, Category: "platos"}
	gaseosa = &domain.Product{ID: "p-gaseosa", Name: "Gaseosa", Price: 5, Category: "bebidas"}
)

type fixture struct {
	users        *stubUserRepo
	products     *stubProductRepo
	orders       *stubOrderRepo
	payments     *stubPaymentRepo
	reservations *stubReservationRepo
	testimonials *stubTestimonialRepo
	activity     *stubActivityRepo
	tx           *stubTransactor
	outbox       *stubOutbox
	publisher    *stubPublisher
	idem         *stubIdempotency
	audit        *AuditTrail
}

func newFixture() *fixture {
	f := &fixture{
		users:        newStubUserRepo(alice, bob, admin),
		products:     newStubProductRepo(pollo, gaseosa),
		orders:       &stubOrderRepo{},
		payments:     &stubPaymentRepo{},
		reservations: &stubReservationRepo{},
		testimonials: &stubTestimonialRepo{},
		activity:     &stubActivityRepo{},
		tx:           &stubTransactor{},
		outbox:       &stubOutbox{},
		publisher:    &stubPublisher{},
		idem:         newStubIdempotency(),
	}
	f.audit = NewAuditTrail(f.activity, f.tx, f.outbox, f.publisher, zerolog.Nop())
	return f
}

func (f *fixture) orderService() *OrderService {
	return NewOrderService(f.orders, f.products, f.users, f.audit, f.idem, zerolog.Nop())
}

func (f *fixture) paymentService() *PaymentService {
	return NewPaymentService(f.payments, f.orders, f.users, f.audit, f.idem, zerolog.Nop())
}

func (f *fixture) reservationService() *ReservationService {
	return NewReservationService(f.reservations, f.users, f.audit, zerolog.Nop())
}

func (f *fixture) testimonialService() *TestimonialService {
	return NewTestimonialService(f.testimonials, f.users, f.audit, zerolog.Nop())
}
