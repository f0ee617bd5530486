package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

func floatPtr(v float64) *float64 { return &v }

func createOrder(t *testing.T, svc *OrderService, caller domain.Caller) *domain.Order {
	t.Helper()
	res, err := svc.Create(context.Background(), caller, ports.CreateOrderInput{
		Items: []ports.OrderItemInput{{ProductID: gaseosa.ID, Quantity: 2, Price: 10}},
		Total: floatPtr(20),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return res.Order
}

func TestOrderService_Create_PendingWithOneActivity(t *testing.T) {
	f := newFixture()
	svc := f.orderService()

	order := createOrder(t, svc, aliceCaller)

	if order.Status != domain.OrderPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if order.Total != 20 {
		t.Fatalf("expected total 20, got %v", order.Total)
	}
	stored, err := f.orders.FindByID(context.Background(), order.ID)
	if err != nil || stored.Total != 20 {
		t.Fatalf("order not stored correctly: %+v, %v", stored, err)
	}
	if got := f.activity.actions(); len(got) != 1 || got[0] != domain.ActionOrderCreated {
		t.Fatalf("expected exactly one %q entry, got %v", domain.ActionOrderCreated, got)
	}
	if want := "Pedido #" + order.ID + " con un total de S/. 20"; f.activity.entries[0].Details != want {
		t.Fatalf("details = %q, want %q", f.activity.entries[0].Details, want)
	}
	if f.activity.entries[0].UserID != alice.ID {
		t.Fatalf("activity must be attributed to the buyer")
	}
}

func TestOrderService_Create_ComputesTotalWhenOmitted(t *testing.T) {
	f := newFixture()
	res, err := f.orderService().Create(context.Background(), aliceCaller, ports.CreateOrderInput{
		Items: []ports.OrderItemInput{
			{ProductID: pollo.ID, Quantity: 1, Price: 10.15},
			{ProductID: gaseosa.ID, Quantity: 2, Price: 5.05},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if res.Order.Total != 20.25 {
		t.Fatalf("expected 20.25, got %v", res.Order.Total)
	}
}

func TestOrderService_Create_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   ports.CreateOrderInput
	}{
		{"no items", ports.CreateOrderInput{}},
		{"zero quantity", ports.CreateOrderInput{Items: []ports.OrderItemInput{{ProductID: pollo.ID, Quantity: 0, Price: 10}}}},
		{"zero price", ports.CreateOrderInput{Items: []ports.OrderItemInput{{ProductID: pollo.ID, Quantity: 1, Price: 0}}}},
		{"unknown product", ports.CreateOrderInput{Items: []ports.OrderItemInput{{ProductID: "nope", Quantity: 1, Price: 10}}}},
		{"total mismatch", ports.CreateOrderInput{
			Items: []ports.OrderItemInput{{ProductID: pollo.ID, Quantity: 2, Price: 10}},
			Total: floatPtr(25),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.orderService().Create(context.Background(), aliceCaller, tc.in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(f.orders.items) != 0 || len(f.activity.actions()) != 0 {
				t.Fatalf("nothing should be written on validation failure")
			}
		})
	}
}

func TestOrderService_Create_StoresItemPricesAtCents(t *testing.T) {
	f := newFixture()
	res, err := f.orderService().Create(context.Background(), aliceCaller, ports.CreateOrderInput{
		Items: []ports.OrderItemInput{
			{ProductID: pollo.ID, Quantity: 1, Price: 10.005},
			{ProductID: gaseosa.ID, Quantity: 3, Price: 4.999},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	o := f.orders.items[0]
	if o.Items[0].Price != 10.01 || o.Items[1].Price != 5 {
		t.Fatalf("item prices not stored at cents: %+v", o.Items)
	}
	if !domain.SameAmount(o.Total, 25.01) || res.Order.Total != o.Total {
		t.Fatalf("unexpected total %v", o.Total)
	}
	if !domain.OrderTotal(o.Items).Equal(domain.Money(o.Total)) {
		t.Fatalf("stored items do not add up to the stored total")
	}
}

func TestOrderService_Create_IdempotentReplay(t *testing.T) {
	f := newFixture()
	svc := f.orderService()
	in := ports.CreateOrderInput{
		Items:          []ports.OrderItemInput{{ProductID: pollo.ID, Quantity: 1, Price: 10}},
		IdempotencyKey: "key-1",
	}

	first, err := svc.Create(context.Background(), aliceCaller, in)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	second, err := svc.Create(context.Background(), aliceCaller, in)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if !second.Replayed || second.Order.ID != first.Order.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Order.ID, second)
	}
	if len(f.orders.items) != 1 || len(f.activity.actions()) != 1 {
		t.Fatalf("replay must not write again")
	}

	// the same key from another user is a different request
	other, err := svc.Create(context.Background(), bobCaller, in)
	if err != nil {
		t.Fatalf("bob Create: %v", err)
	}
	if other.Replayed {
		t.Fatalf("keys must be scoped per user")
	}
}

// gatedOrderRepo holds Create until the test lets it through.
type gatedOrderRepo struct {
	*stubOrderRepo
	entered chan struct{}
	proceed chan struct{}
}

func (r *gatedOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	close(r.entered)
	<-r.proceed
	return r.stubOrderRepo.Create(ctx, o)
}

func TestOrderService_Create_RetryWhileFirstRequestRuns(t *testing.T) {
	f := newFixture()
	gated := &gatedOrderRepo{stubOrderRepo: f.orders, entered: make(chan struct{}), proceed: make(chan struct{})}
	svc := NewOrderService(gated, f.products, f.users, f.audit, f.idem, zerolog.Nop())
	in := ports.CreateOrderInput{
		Items:          []ports.OrderItemInput{{ProductID: pollo.ID, Quantity: 1, Price: 10}},
		IdempotencyKey: "k1",
	}

	var (
		first    *ports.OrderResult
		firstErr error
		done     = make(chan struct{})
	)
	go func() {
		defer close(done)
		first, firstErr = svc.Create(context.Background(), aliceCaller, in)
	}()
	<-gated.entered

	if _, err := svc.Create(context.Background(), aliceCaller, in); !errors.Is(err, domain.ErrRequestInProgress) {
		t.Fatalf("expected ErrRequestInProgress while the first request runs, got %v", err)
	}

	close(gated.proceed)
	<-done
	if firstErr != nil {
		t.Fatalf("first Create: %v", firstErr)
	}

	again, err := svc.Create(context.Background(), aliceCaller, in)
	if err != nil {
		t.Fatalf("retry after completion: %v", err)
	}
	if !again.Replayed || again.Order.ID != first.Order.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Order.ID, again)
	}
	if len(f.orders.items) != 1 {
		t.Fatalf("orders stored for one key: %d", len(f.orders.items))
	}
}

func TestOrderService_Create_FailedRequestReleasesKey(t *testing.T) {
	f := newFixture()
	svc := f.orderService()
	bad := ports.CreateOrderInput{
		Items:          []ports.OrderItemInput{{ProductID: "p-missing", Quantity: 1, Price: 10}},
		IdempotencyKey: "k2",
	}
	if _, err := svc.Create(context.Background(), aliceCaller, bad); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if f.idem.len() != 0 {
		t.Fatalf("a failed request must release its key")
	}

	good := bad
	good.Items = []ports.OrderItemInput{{ProductID: pollo.ID, Quantity: 1, Price: 10}}
	res, err := svc.Create(context.Background(), aliceCaller, good)
	if err != nil || res.Replayed {
		t.Fatalf("retry with the same key should create, got %+v, %v", res, err)
	}
}

func TestOrderService_Create_IdempotencyStoreDown(t *testing.T) {
	f := newFixture()
	f.idem.claimErr = errStubStore
	in := ports.CreateOrderInput{
		Items:          []ports.OrderItemInput{{ProductID: pollo.ID, Quantity: 1, Price: 10}},
		IdempotencyKey: "k3",
	}
	if _, err := f.orderService().Create(context.Background(), aliceCaller, in); err != nil {
		t.Fatalf("an unavailable store must not block orders: %v", err)
	}
	if len(f.orders.items) != 1 {
		t.Fatalf("expected the order to be stored")
	}
}

func TestOrderService_Get_OwnerAdminAndStranger(t *testing.T) {
	f := newFixture()
	svc := f.orderService()
	order := createOrder(t, svc, aliceCaller)

	view, err := svc.Get(context.Background(), aliceCaller, order.ID)
	if err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].Product == nil || view.Lines[0].Product.Name != gaseosa.Name {
		t.Fatalf("expected resolved product, got %+v", view.Lines)
	}

	if _, err := svc.Get(context.Background(), adminCaller, order.ID); err != nil {
		t.Fatalf("admin Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), bobCaller, order.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
	if _, err := svc.Get(context.Background(), aliceCaller, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Admin delivers an order; the owner sees it delivered, a stranger is refused.
func TestOrderService_SetStatus_Delivered(t *testing.T) {
	f := newFixture()
	svc := f.orderService()
	order := createOrder(t, svc, aliceCaller)

	updated, err := svc.SetStatus(context.Background(), adminCaller, order.ID, domain.OrderDelivered)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != domain.OrderDelivered {
		t.Fatalf("expected delivered, got %s", updated.Status)
	}

	view, err := svc.Get(context.Background(), aliceCaller, order.ID)
	if err != nil || view.Order.Status != domain.OrderDelivered {
		t.Fatalf("owner should see delivered order, got %+v, %v", view, err)
	}
	if _, err := svc.Get(context.Background(), bobCaller, order.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	entries := f.activity.entries
	last := entries[len(entries)-1]
	if last.Action != domain.ActionOrderUpdated || last.UserID != admin.ID {
		t.Fatalf("expected status activity by admin, got %+v", last)
	}
	if want := "Pedido #" + order.ID + " cambió a estado: delivered"; last.Details != want {
		t.Fatalf("details = %q, want %q", last.Details, want)
	}
}

func TestOrderService_SetStatus_NonAdminLeavesOrderUntouched(t *testing.T) {
	f := newFixture()
	svc := f.orderService()
	order := createOrder(t, svc, aliceCaller)

	if _, err := svc.SetStatus(context.Background(), aliceCaller, order.ID, domain.OrderCancelled); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	stored, _ := f.orders.FindByID(context.Background(), order.ID)
	if stored.Status != domain.OrderPending {
		t.Fatalf("order must stay pending, got %s", stored.Status)
	}
	if len(f.activity.actions()) != 1 {
		t.Fatalf("no status activity expected")
	}
}

func TestOrderService_SetStatus_RejectsIllegalTransition(t *testing.T) {
	f := newFixture()
	svc := f.orderService()
	order := createOrder(t, svc, aliceCaller)

	if _, err := svc.SetStatus(context.Background(), adminCaller, order.ID, domain.OrderCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	_, err := svc.SetStatus(context.Background(), adminCaller, order.ID, domain.OrderDelivered)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), adminCaller, order.ID, "shipped"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
}

// staleOrderRepo answers reads with a snapshot taken before another admin's
// update landed, while writes hit the live store.
type staleOrderRepo struct {
	*stubOrderRepo
	snapshot domain.Order
}

func (r *staleOrderRepo) FindByID(_ context.Context, _ string) (*domain.Order, error) {
	clone := r.snapshot
	return &clone, nil
}

func TestOrderService_SetStatus_StaleReadKeepsTerminalStatus(t *testing.T) {
	f := newFixture()
	svc := f.orderService()
	order := createOrder(t, svc, aliceCaller)
	snapshot := *order

	if _, err := svc.SetStatus(context.Background(), adminCaller, order.ID, domain.OrderDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	entries := len(f.activity.actions())

	racing := NewOrderService(&staleOrderRepo{stubOrderRepo: f.orders, snapshot: snapshot}, f.products, f.users, f.audit, f.idem, zerolog.Nop())
	_, err := racing.SetStatus(context.Background(), adminCaller, order.ID, domain.OrderCancelled)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if got := f.orders.items[0].Status; got != domain.OrderDelivered {
		t.Fatalf("delivered order was overwritten with %s", got)
	}
	if len(f.activity.actions()) != entries {
		t.Fatalf("a rejected move must not be logged")
	}
}

func TestOrderService_SetStatus_RepeatedStatusLogsEachCall(t *testing.T) {
	f := newFixture()
	svc := f.orderService()
	order := createOrder(t, svc, aliceCaller)

	for i := 0; i < 2; i++ {
		if _, err := svc.SetStatus(context.Background(), adminCaller, order.ID, domain.OrderDelivered); err != nil {
			t.Fatalf("SetStatus #%d: %v", i+1, err)
		}
	}
	if got := len(f.activity.actions()); got != 3 {
		t.Fatalf("expected 1 create + 2 status entries, got %d", got)
	}
}

func TestOrderService_ListMineAndAll(t *testing.T) {
	f := newFixture()
	svc := f.orderService()
	createOrder(t, svc, aliceCaller)
	createOrder(t, svc, aliceCaller)
	createOrder(t, svc, bobCaller)

	mine, err := svc.ListMine(context.Background(), aliceCaller, domain.NewPage(1, 20))
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if mine.Total != 2 || len(mine.Items) != 2 {
		t.Fatalf("expected 2 orders for alice, got %d", mine.Total)
	}
	for _, v := range mine.Items {
		if v.Owner != nil {
			t.Fatalf("own listing should not resolve owner")
		}
	}

	if _, err := svc.ListAll(context.Background(), aliceCaller, domain.NewPage(1, 20)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	all, err := svc.ListAll(context.Background(), adminCaller, domain.NewPage(1, 2))
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if all.Total != 3 || len(all.Items) != 2 || all.TotalPages != 2 {
		t.Fatalf("unexpected page: total=%d items=%d pages=%d", all.Total, len(all.Items), all.TotalPages)
	}
	if all.Items[0].Owner == nil || all.Items[0].Owner.Name != bob.Name {
		t.Fatalf("expected newest order owned by bob, got %+v", all.Items[0].Owner)
	}
}
