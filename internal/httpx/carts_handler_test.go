package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/go-chi/chi/v5"
)

type fakeCarts struct {
	create  func(ctx context.Context) (store.Cart, error)
	get     func(ctx context.Context, cartID string) (store.Cart, error)
	addItem func(ctx context.Context, cartID, productID string, qty int) (store.CartItem, error)
}

func (f *fakeCarts) Create(ctx context.Context) (store.Cart, error) { return f.create(ctx) }
func (f *fakeCarts) GetWithItems(ctx context.Context, cartID string) (store.Cart, error) {
	return f.get(ctx, cartID)
}
func (f *fakeCarts) Delete(ctx context.Context, cartID string) error { return nil }
func (f *fakeCarts) AddItem(ctx context.Context, cartID, productID string, qty int) (store.CartItem, error) {
	return f.addItem(ctx, cartID, productID, qty)
}
func (f *fakeCarts) UpdateItemQty(ctx context.Context, cartID, itemID string, qty int) (store.CartItem, error) {
	return store.CartItem{}, nil
}
func (f *fakeCarts) RemoveItem(ctx context.Context, cartID, itemID string) error { return nil }

func newCartsRouter(h *CartsHandler) *chi.Mux {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestGetCartEndpoint(t *testing.T) {
	t.Run("ok with total", func(t *testing.T) {
		h := &CartsHandler{Carts: &fakeCarts{
			get: func(ctx context.Context, cartID string) (store.Cart, error) {
				return store.Cart{
					ID: cartID,
					Items: []store.CartItem{
						{ID: "ci-1", Qty: 2, Product: store.ProductSummary{ID: "p-1", Title: "widget", PriceCents: 1000}},
					},
				}, nil
			},
		}}
		r := newCartsRouter(h)

		req := httptest.NewRequest(http.MethodGet, "/carts/c-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got %d", w.Code)
		}
		var resp cartJSON
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.TotalCents != 2000 || len(resp.Items) != 1 {
			t.Fatalf("unexpected body: %+v", resp)
		}
		if resp.Items[0].TotalCents != 2000 {
			t.Fatalf("item total: %d", resp.Items[0].TotalCents)
		}
	})

	t.Run("missing -> 404", func(t *testing.T) {
		h := &CartsHandler{Carts: &fakeCarts{
			get: func(ctx context.Context, cartID string) (store.Cart, error) {
				return store.Cart{}, fmt.Errorf("cart %s: %w", cartID, store.ErrNotFound)
			},
		}}
		r := newCartsRouter(h)

		req := httptest.NewRequest(http.MethodGet, "/carts/nope", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("got %d", w.Code)
		}
	})
}

func TestAddCartItemEndpoint(t *testing.T) {
	t.Run("upsert increments", func(t *testing.T) {
		h := &CartsHandler{Carts: &fakeCarts{
			addItem: func(ctx context.Context, cartID, productID string, qty int) (store.CartItem, error) {
				// qty 3 sudah termasuk increment dari item lama
				return store.CartItem{ID: "ci-1", CartID: cartID, ProductID: productID, Qty: qty + 1}, nil
			},
		}}
		r := newCartsRouter(h)

		req := httptest.NewRequest(http.MethodPost, "/carts/c-1/items",
			strings.NewReader(`{"product_id":"p-1","qty":2}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("got %d: %s", w.Code, w.Body.String())
		}
		var resp cartItemResp
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Qty != 3 {
			t.Fatalf("qty = %d, want 3", resp.Qty)
		}
	})

	t.Run("missing product_id -> 400", func(t *testing.T) {
		h := &CartsHandler{Carts: &fakeCarts{}}
		r := newCartsRouter(h)

		req := httptest.NewRequest(http.MethodPost, "/carts/c-1/items",
			strings.NewReader(`{"qty":2}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("got %d", w.Code)
		}
	})

	t.Run("qty 0 -> 400", func(t *testing.T) {
		h := &CartsHandler{Carts: &fakeCarts{
			addItem: func(ctx context.Context, cartID, productID string, qty int) (store.CartItem, error) {
				return store.CartItem{}, fmt.Errorf("%w: qty must be >= 1", store.ErrInvalidInput)
			},
		}}
		r := newCartsRouter(h)

		req := httptest.NewRequest(http.MethodPost, "/carts/c-1/items",
			strings.NewReader(`{"product_id":"p-1","qty":0}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("got %d", w.Code)
		}
	})
}
