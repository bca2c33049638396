package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/tealeg/xlsx"
)

type ProductStore interface {
	List(ctx context.Context, f store.ProductFilter) ([]store.Product, error)
	Get(ctx context.Context, id string) (store.Product, error)
	Create(ctx context.Context, p store.Product) (store.Product, error)
	Update(ctx context.Context, p store.Product) (store.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductsHandler struct {
	Products ProductStore
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.list)
	r.Get("/products/export", h.exportXLSX)
	r.Post("/products", h.create)
	r.Get("/products/{id}", h.get)
	r.Put("/products/{id}", h.update)
	r.Delete("/products/{id}", h.delete)
}

type productReq struct {
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	PriceCents   int    `json:"price_cents"`
	Inventory    int    `json:"inventory"`
	CollectionID string `json:"collection_id"`
}

func filterFromQuery(r *http.Request) store.ProductFilter {
	q := r.URL.Query()
	atoi := func(k string) int {
		n, _ := strconv.Atoi(q.Get(k))
		return n
	}
	return store.ProductFilter{
		CollectionID:  q.Get("collection_id"),
		MinPriceCents: atoi("min_price_cents"),
		MaxPriceCents: atoi("max_price_cents"),
		Search:        q.Get("search"),
		OrderBy:       q.Get("order_by"),
		Limit:         atoi("limit"),
		Offset:        atoi("offset"),
	}
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Products.List(ctx, filterFromQuery(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]productJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Products.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductJSON(p))
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.Create(ctx, store.Product{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		Inventory:    req.Inventory,
		CollectionID: req.CollectionID,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductJSON(p))
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.Update(ctx, store.Product{
		ID:           chi.URLParam(r, "id"),
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		PriceCents:   req.PriceCents,
		Inventory:    req.Inventory,
		CollectionID: req.CollectionID,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductJSON(p))
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Products.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportXLSX dump seluruh katalog (filter query tetap berlaku) jadi satu sheet.
func (h *ProductsHandler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ps, err := h.Products.List(ctx, filterFromQuery(r))
	if err != nil {
		writeErr(w, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		writeErr(w, err)
		return
	}

	headerRow := sheet.AddRow()
	for _, hd := range []string{
		"ID", "Title", "Slug", "Description", "PriceCents",
		"Inventory", "CollectionID", "CreatedAt", "UpdatedAt",
	} {
		headerRow.AddCell().SetValue(hd)
	}

	for _, p := range ps {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Title)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.PriceCents)
		row.AddCell().SetValue(p.Inventory)
		row.AddCell().SetValue(p.CollectionID)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(w); err != nil {
		// header sudah terkirim, tinggal log di middleware
		return
	}
}
