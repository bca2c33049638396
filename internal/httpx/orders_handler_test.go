package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/go-chi/chi/v5"
)

type fakeCheckout struct {
	placeOrder func(ctx context.Context, cartID, customerID string) (store.Order, error)
}

func (f *fakeCheckout) PlaceOrder(ctx context.Context, cartID, customerID string) (store.Order, error) {
	return f.placeOrder(ctx, cartID, customerID)
}

type fakeOrders struct {
	get          func(ctx context.Context, orderID string) (store.Order, error)
	list         func(ctx context.Context, customerID string) ([]store.Order, error)
	updatePaymnt func(ctx context.Context, orderID string, to store.PaymentStatus) (store.PaymentStatus, error)
}

func (f *fakeOrders) GetWithItems(ctx context.Context, orderID string) (store.Order, error) {
	return f.get(ctx, orderID)
}
func (f *fakeOrders) ListByCustomer(ctx context.Context, customerID string) ([]store.Order, error) {
	return f.list(ctx, customerID)
}
func (f *fakeOrders) UpdatePaymentStatus(ctx context.Context, orderID string, to store.PaymentStatus) (store.PaymentStatus, error) {
	return f.updatePaymnt(ctx, orderID, to)
}

func newOrdersRouter(h *OrdersHandler) *chi.Mux {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestPlaceOrderEndpoint(t *testing.T) {
	t.Run("created -> 201 with items", func(t *testing.T) {
		h := &OrdersHandler{
			Checkout: &fakeCheckout{
				placeOrder: func(ctx context.Context, cartID, customerID string) (store.Order, error) {
					return store.Order{
						ID:            "o-1",
						CustomerID:    customerID,
						PlacedAt:      time.Now().UTC(),
						PaymentStatus: store.PaymentPending,
						TotalCents:    2500,
						Items: []store.OrderItem{
							{ID: "oi-1", ProductID: "p-1", Qty: 2, PriceCents: 1000},
							{ID: "oi-2", ProductID: "p-2", Qty: 1, PriceCents: 500},
						},
					}, nil
				},
			},
		}
		r := newOrdersRouter(h)

		req := httptest.NewRequest(http.MethodPost, "/orders",
			strings.NewReader(`{"cart_id":"c-1","customer_id":"cust-1"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("got %d: %s", w.Code, w.Body.String())
		}
		var resp orderJSON
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.ID != "o-1" || resp.TotalCents != 2500 || len(resp.Items) != 2 {
			t.Fatalf("unexpected body: %+v", resp)
		}
		if resp.PaymentStatus != "PENDING" {
			t.Fatalf("got status %s", resp.PaymentStatus)
		}
	})

	t.Run("missing fields -> 400", func(t *testing.T) {
		h := &OrdersHandler{Checkout: &fakeCheckout{}}
		r := newOrdersRouter(h)

		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"cart_id":"c-1"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got %d", w.Code)
		}
	})

	t.Run("empty cart -> 400", func(t *testing.T) {
		h := &OrdersHandler{
			Checkout: &fakeCheckout{
				placeOrder: func(ctx context.Context, cartID, customerID string) (store.Order, error) {
					return store.Order{}, fmt.Errorf("cart %s is empty: %w", cartID, store.ErrInvalidInput)
				},
			},
		}
		r := newOrdersRouter(h)

		req := httptest.NewRequest(http.MethodPost, "/orders",
			strings.NewReader(`{"cart_id":"c-1","customer_id":"cust-1"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got %d", w.Code)
		}
	})

	t.Run("missing cart -> 404", func(t *testing.T) {
		h := &OrdersHandler{
			Checkout: &fakeCheckout{
				placeOrder: func(ctx context.Context, cartID, customerID string) (store.Order, error) {
					return store.Order{}, fmt.Errorf("cart %s: %w", cartID, store.ErrNotFound)
				},
			},
		}
		r := newOrdersRouter(h)

		req := httptest.NewRequest(http.MethodPost, "/orders",
			strings.NewReader(`{"cart_id":"c-404","customer_id":"cust-1"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("got %d", w.Code)
		}
	})
}

func TestUpdatePaymentEndpoint(t *testing.T) {
	t.Run("pending -> complete ok", func(t *testing.T) {
		h := &OrdersHandler{
			Orders: &fakeOrders{
				updatePaymnt: func(ctx context.Context, orderID string, to store.PaymentStatus) (store.PaymentStatus, error) {
					if to != store.PaymentComplete {
						t.Fatalf("unexpected target %s", to)
					}
					return store.PaymentPending, nil
				},
			},
		}
		r := newOrdersRouter(h)

		req := httptest.NewRequest(http.MethodPatch, "/orders/o-1",
			strings.NewReader(`{"payment_status":"COMPLETE"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("terminal status -> 400", func(t *testing.T) {
		h := &OrdersHandler{
			Orders: &fakeOrders{
				updatePaymnt: func(ctx context.Context, orderID string, to store.PaymentStatus) (store.PaymentStatus, error) {
					return "", fmt.Errorf("%w: payment status COMPLETE -> FAILED", store.ErrInvalidInput)
				},
			},
		}
		r := newOrdersRouter(h)

		req := httptest.NewRequest(http.MethodPatch, "/orders/o-1",
			strings.NewReader(`{"payment_status":"FAILED"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got %d", w.Code)
		}
	})
}

func TestListOrdersEndpoint(t *testing.T) {
	h := &OrdersHandler{
		Orders: &fakeOrders{
			list: func(ctx context.Context, customerID string) ([]store.Order, error) {
				return []store.Order{{ID: "o-1", CustomerID: customerID}}, nil
			},
		},
	}
	r := newOrdersRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/orders?customer_id=cust-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}

	// tanpa customer_id -> 400
	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d", w.Code)
	}
}
