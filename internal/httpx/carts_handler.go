package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/go-chi/chi/v5"
)

type CartStore interface {
	Create(ctx context.Context) (store.Cart, error)
	GetWithItems(ctx context.Context, cartID string) (store.Cart, error)
	Delete(ctx context.Context, cartID string) error
	AddItem(ctx context.Context, cartID, productID string, qty int) (store.CartItem, error)
	UpdateItemQty(ctx context.Context, cartID, itemID string, qty int) (store.CartItem, error)
	RemoveItem(ctx context.Context, cartID, itemID string) error
}

type CartsHandler struct {
	Carts CartStore
}

func (h *CartsHandler) Register(r *chi.Mux) {
	r.Post("/carts", h.create)
	r.Get("/carts/{cartID}", h.get)
	r.Delete("/carts/{cartID}", h.delete)
	r.Post("/carts/{cartID}/items", h.addItem)
	r.Patch("/carts/{cartID}/items/{itemID}", h.updateItem)
	r.Delete("/carts/{cartID}/items/{itemID}", h.removeItem)
}

func (h *CartsHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Carts.Create(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCartJSON(c))
}

func (h *CartsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Carts.GetWithItems(ctx, chi.URLParam(r, "cartID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartJSON(c))
}

func (h *CartsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Carts.Delete(ctx, chi.URLParam(r, "cartID")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addItemReq struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type itemQtyReq struct {
	Qty int `json:"qty"`
}

type cartItemResp struct {
	ID        string `json:"id"`
	CartID    string `json:"cart_id"`
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

func (h *CartsHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing product_id"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, err := h.Carts.AddItem(ctx, chi.URLParam(r, "cartID"), req.ProductID, req.Qty)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cartItemResp{
		ID: it.ID, CartID: it.CartID, ProductID: it.ProductID, Qty: it.Qty,
	})
}

func (h *CartsHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req itemQtyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, err := h.Carts.UpdateItemQty(ctx, chi.URLParam(r, "cartID"), chi.URLParam(r, "itemID"), req.Qty)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartItemResp{
		ID: it.ID, CartID: it.CartID, ProductID: it.ProductID, Qty: it.Qty,
	})
}

func (h *CartsHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Carts.RemoveItem(ctx, chi.URLParam(r, "cartID"), chi.URLParam(r, "itemID")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
