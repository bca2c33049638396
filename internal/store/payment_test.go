package store

import "testing"

func TestPaymentTransitions(t *testing.T) {
	cases := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentPending, PaymentComplete, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentComplete, PaymentPending, false},
		{PaymentComplete, PaymentFailed, false},
		{PaymentFailed, PaymentComplete, false},
		{PaymentPending, PaymentPending, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestPaymentStatusValid(t *testing.T) {
	if !PaymentPending.Valid() {
		t.Fatal("PENDING should be valid")
	}
	if PaymentStatus("SHIPPED").Valid() {
		t.Fatal("SHIPPED should not be valid")
	}
}
