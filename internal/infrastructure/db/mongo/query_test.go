package mongo

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

func TestOwnerQuery(t *testing.T) {
	if got := ownerQuery(ports.OwnerFilter{}); len(got) != 0 {
		t.Errorf("empty filter should match everything, got %v", got)
	}
	got := ownerQuery(ports.OwnerFilter{UserID: "u1"})
	if !reflect.DeepEqual(got, bson.M{"userId": "u1"}) {
		t.Errorf("got %v", got)
	}
}

func TestProductQuery(t *testing.T) {
	popular := false
	tests := []struct {
		name   string
		filter ports.ProductFilter
		want   bson.M
	}{
		{"no filter", ports.ProductFilter{}, bson.M{}},
		{"category", ports.ProductFilter{Category: "combos"}, bson.M{"category": "combos"}},
		{"popular false is still a filter", ports.ProductFilter{Popular: &popular}, bson.M{"popular": false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := productQuery(tt.filter); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusIn(t *testing.T) {
	got := statusIn(domain.OrderCancelled.EnteredFrom())
	in, ok := got["status"].(bson.M)["$in"].([]domain.OrderStatus)
	if !ok {
		t.Fatalf("unexpected guard %v", got)
	}
	for _, s := range in {
		if s == domain.OrderDelivered {
			t.Fatalf("a delivered order must not match a move to cancelled: %v", in)
		}
	}
	if len(in) != 2 {
		t.Fatalf("expected pending and cancelled, got %v", in)
	}
}
