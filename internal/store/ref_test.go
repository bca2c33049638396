package store

import (
	"errors"
	"testing"
)

func TestParseRefKind(t *testing.T) {
	for _, s := range []string{"product", "collection", "customer", "order"} {
		k, err := ParseRefKind(s)
		if err != nil {
			t.Fatalf("ParseRefKind(%q): %v", s, err)
		}
		if string(k) != s {
			t.Fatalf("ParseRefKind(%q) = %q", s, k)
		}
	}

	for _, s := range []string{"", "user", "Product", "cart"} {
		if _, err := ParseRefKind(s); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ParseRefKind(%q): expected ErrInvalidInput, got %v", s, err)
		}
	}
}
