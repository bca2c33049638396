package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	kafkax "github.com/ariefcatur/go-storefront.git/internal/kafka"
	"github.com/ariefcatur/go-storefront.git/internal/redisx"
	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, cartID, customerID string) (store.Order, error)
}

type OrderStore interface {
	GetWithItems(ctx context.Context, orderID string) (store.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]store.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID string, to store.PaymentStatus) (store.PaymentStatus, error)
}

type OrdersHandler struct {
	Checkout CheckoutService
	Orders   OrderStore
	Producer *kafkax.Producer
	Redis    *redis.Client
	Service  string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.placeOrder)
	r.Get("/orders", h.listByCustomer)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/orders/{id}/status", h.getStatus)
	r.Patch("/orders/{id}", h.updatePayment)
}

type placeOrderReq struct {
	CartID     string `json:"cart_id"`
	CustomerID string `json:"customer_id"`
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.CartID == "" || req.CustomerID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Checkout.PlaceOrder(ctx, req.CartID, req.CustomerID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderJSON(order))
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Orders.GetWithItems(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderJSON(o))
}

// getStatus jalur cepat: Redis dulu, fallback DB.
func (h *OrdersHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	o, err := h.Orders.GetWithItems(ctx, orderID)
	if err != nil {
		writeErr(w, err)
		return
	}
	body, _ := json.Marshal(map[string]any{"payment_status": o.PaymentStatus})
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, body, redisx.TTLStatusCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *OrdersHandler) listByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing customer_id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	os, err := h.Orders.ListByCustomer(ctx, customerID)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]orderJSON, 0, len(os))
	for _, o := range os {
		out = append(out, toOrderJSON(o))
	}
	writeJSON(w, http.StatusOK, out)
}

type updatePaymentReq struct {
	PaymentStatus string `json:"payment_status"`
}

func (h *OrdersHandler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var req updatePaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	orderID := chi.URLParam(r, "id")
	to := store.PaymentStatus(req.PaymentStatus)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	from, err := h.Orders.UpdatePaymentStatus(ctx, orderID, to)
	if err != nil {
		writeErr(w, err)
		return
	}

	// refresh cache status biar GET berikutnya tidak baca status lama
	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		_ = h.Redis.Set(ctx, key,
			fmt.Sprintf(`{"payment_status":%q}`, to), redisx.TTLStatusCache).Err()
	}

	if h.Producer != nil {
		ev := store.Envelope{
			EventID:       uuid.NewString(),
			EventType:     store.EventPaymentStatusChanged,
			EventVersion:  1,
			OccurredAt:    time.Now().UTC(),
			Producer:      h.Service,
			TraceID:       r.Header.Get("X-Request-Id"),
			CorrelationID: orderID,
			Payload: kafkax.MustMarshal(store.PaymentStatusChangedPayload{
				OrderID: orderID, From: from, To: to,
			}),
		}
		h.Producer.Publish(store.PartitionKey(orderID), kafkax.MustMarshal(ev),
			kafkax.EventHeaders(store.EventPaymentStatusChanged, 1)...)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"order_id": orderID, "payment_status": string(to),
	})
}
