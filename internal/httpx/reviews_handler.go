package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/go-chi/chi/v5"
)

type ReviewStore interface {
	ListByProduct(ctx context.Context, productID string) ([]store.Review, error)
	Get(ctx context.Context, productID, id string) (store.Review, error)
	Create(ctx context.Context, productID string, rv store.Review) (store.Review, error)
	Delete(ctx context.Context, productID, id string) error
}

// ReviewsHandler: review selalu nested di bawah product.
type ReviewsHandler struct {
	Reviews ReviewStore
}

func (h *ReviewsHandler) Register(r *chi.Mux) {
	r.Get("/products/{productID}/reviews", h.list)
	r.Post("/products/{productID}/reviews", h.create)
	r.Get("/products/{productID}/reviews/{id}", h.get)
	r.Delete("/products/{productID}/reviews/{id}", h.delete)
}

type reviewReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *ReviewsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	rvs, err := h.Reviews.ListByProduct(ctx, chi.URLParam(r, "productID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]reviewJSON, 0, len(rvs))
	for _, rv := range rvs {
		out = append(out, toReviewJSON(rv))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReviewsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	rv, err := h.Reviews.Get(ctx, chi.URLParam(r, "productID"), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReviewJSON(rv))
}

func (h *ReviewsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req reviewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	rv, err := h.Reviews.Create(ctx, chi.URLParam(r, "productID"), store.Review{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewJSON(rv))
}

func (h *ReviewsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Reviews.Delete(ctx, chi.URLParam(r, "productID"), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
