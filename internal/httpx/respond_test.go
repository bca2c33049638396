package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ariefcatur/go-storefront.git/internal/store"
)

func TestStatusFor(t *testing.T) {
	t.Run("not found -> 404", func(t *testing.T) {
		err := fmt.Errorf("cart abc: %w", store.ErrNotFound)
		if got := statusFor(err); got != http.StatusNotFound {
			t.Fatalf("got %d", got)
		}
	})

	t.Run("invalid input -> 400", func(t *testing.T) {
		err := fmt.Errorf("cart abc is empty: %w", store.ErrInvalidInput)
		if got := statusFor(err); got != http.StatusBadRequest {
			t.Fatalf("got %d", got)
		}
	})

	t.Run("protected -> 409", func(t *testing.T) {
		err := fmt.Errorf("product abc is referenced: %w", store.ErrProtected)
		if got := statusFor(err); got != http.StatusConflict {
			t.Fatalf("got %d", got)
		}
	})

	t.Run("anything else -> 500", func(t *testing.T) {
		if got := statusFor(errors.New("boom")); got != http.StatusInternalServerError {
			t.Fatalf("got %d", got)
		}
	})
}
