package domain

import (
	"testing"
	"time"
)

func TestOrderTotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: "p1", Quantity: 2, Price: 10},
		{ProductID: "p2", Quantity: 3, Price: 0.1},
	}
	got := OrderTotal(items)
	if got.String() != "20.3" {
		t.Fatalf("expected 20.3, got %s", got)
	}
}

func TestSameAmount(t *testing.T) {
	if !SameAmount(0.1+0.2, 0.3) {
		t.Error("0.1+0.2 should equal 0.3 at cent precision")
	}
	if SameAmount(19.99, 20) {
		t.Error("19.99 must differ from 20")
	}
}

func TestOrder_ProductIDs_Distinct(t *testing.T) {
	o := &Order{Items: []OrderItem{{ProductID: "a"}, {ProductID: "b"}, {ProductID: "a"}}}
	ids := o.ProductIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestOrderCreatedActivity_Details(t *testing.T) {
	o := &Order{ID: "o1", UserID: "u1", Total: 20}
	entry := OrderCreatedActivity(o, time.Now())
	if entry.Action != "Creó un pedido" {
		t.Errorf("unexpected action %q", entry.Action)
	}
	if entry.Details != "Pedido #o1 con un total de S/. 20" {
		t.Errorf("unexpected details %q", entry.Details)
	}
	if entry.UserID != "u1" || entry.ID == "" {
		t.Errorf("entry not attributed: %+v", entry)
	}
}

func TestPage_Normalise(t *testing.T) {
	p := NewPage(0, 500)
	if p.Number != 1 || p.Limit != MaxPageLimit {
		t.Fatalf("unexpected page %+v", p)
	}
	if NewPage(3, 0).Limit != DefaultPageLimit {
		t.Fatal("default limit not applied")
	}
	if got := NewPage(3, 10).Skip(); got != 20 {
		t.Fatalf("expected skip 20, got %d", got)
	}
	huge := NewPage(92233720368547758, 100)
	if huge.Number != MaxPageNumber || huge.Skip() < 0 {
		t.Fatalf("page number must be capped, got %+v skip %d", huge, huge.Skip())
	}
	if got := NewPage(1, 10).TotalPages(21); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}
}
