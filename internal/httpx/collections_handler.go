package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/go-chi/chi/v5"
)

type CollectionStore interface {
	List(ctx context.Context) ([]store.Collection, error)
	Get(ctx context.Context, id string) (store.Collection, error)
	Create(ctx context.Context, c store.Collection) (store.Collection, error)
	Update(ctx context.Context, c store.Collection) (store.Collection, error)
	Delete(ctx context.Context, id string) error
}

type CollectionsHandler struct {
	Collections CollectionStore
}

func (h *CollectionsHandler) Register(r *chi.Mux) {
	r.Get("/collections", h.list)
	r.Post("/collections", h.create)
	r.Get("/collections/{id}", h.get)
	r.Put("/collections/{id}", h.update)
	r.Delete("/collections/{id}", h.delete)
}

type collectionReq struct {
	Title             string  `json:"title"`
	FeaturedProductID *string `json:"featured_product_id"`
}

func (h *CollectionsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	cs, err := h.Collections.List(ctx)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]collectionJSON, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCollectionJSON(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CollectionsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Collections.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCollectionJSON(c))
}

func (h *CollectionsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req collectionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.Collections.Create(ctx, store.Collection{
		Title:             req.Title,
		FeaturedProductID: req.FeaturedProductID,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCollectionJSON(c))
}

func (h *CollectionsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req collectionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.Collections.Update(ctx, store.Collection{
		ID:                chi.URLParam(r, "id"),
		Title:             req.Title,
		FeaturedProductID: req.FeaturedProductID,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCollectionJSON(c))
}

func (h *CollectionsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Collections.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
