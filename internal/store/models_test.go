package store

import "testing"

func TestCartTotalCents(t *testing.T) {
	c := Cart{Items: []CartItem{
		{Qty: 2, Product: ProductSummary{PriceCents: 1000}},
		{Qty: 1, Product: ProductSummary{PriceCents: 500}},
	}}
	if got := c.TotalCents(); got != 2500 {
		t.Fatalf("TotalCents = %d, want 2500", got)
	}

	if got := (Cart{}).TotalCents(); got != 0 {
		t.Fatalf("empty cart TotalCents = %d, want 0", got)
	}
}

func TestMembershipValid(t *testing.T) {
	for _, m := range []Membership{MembershipBronze, MembershipSilver, MembershipGold} {
		if !m.Valid() {
			t.Fatalf("%s should be valid", m)
		}
	}
	if Membership("PLATINUM").Valid() {
		t.Fatal("PLATINUM should not be valid")
	}
}
