// Package checkout mengkonversi cart jadi order.
//
// Notifikasi order.created sifatnya best-effort: producer async, error publish
// cuma di-log, tidak ada retry. Order yang sudah commit tetap sah walau
// event-nya hilang.
package checkout

import (
	"context"
	"fmt"
	"time"

	kafkax "github.com/ariefcatur/go-storefront.git/internal/kafka"
	"github.com/ariefcatur/go-storefront.git/internal/redisx"
	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type CartStore interface {
	GetWithItems(ctx context.Context, cartID string) (store.Cart, error)
}

type OrderStore interface {
	CreateFromCart(ctx context.Context, cartID, customerID string) (store.Order, error)
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Service struct {
	Carts    CartStore
	Orders   OrderStore
	Producer Publisher
	Redis    *redis.Client
	Service  string // nama producer di envelope
}

// PlaceOrder: precondition check -> transaksi repo -> side effect.
//
// Validasi awal (cart ada, tidak kosong) sengaja di luar transaksi biar
// errornya spesifik; race dengan checkout lain ketahuan lagi di dalam
// transaksi lewat delete cart.
func (s *Service) PlaceOrder(ctx context.Context, cartID, customerID string) (store.Order, error) {
	if _, err := uuid.Parse(cartID); err != nil {
		return store.Order{}, fmt.Errorf("%w: malformed cart id %q", store.ErrInvalidInput, cartID)
	}
	if customerID == "" {
		return store.Order{}, fmt.Errorf("%w: customer id required", store.ErrInvalidInput)
	}

	cart, err := s.Carts.GetWithItems(ctx, cartID)
	if err != nil {
		return store.Order{}, err
	}
	if len(cart.Items) == 0 {
		return store.Order{}, fmt.Errorf("cart %s is empty: %w", cartID, store.ErrInvalidInput)
	}

	order, err := s.Orders.CreateFromCart(ctx, cartID, customerID)
	if err != nil {
		return store.Order{}, err
	}

	s.cacheStatus(ctx, cartID, order)
	s.publishCreated(ctx, order)
	return order, nil
}

func (s *Service) cacheStatus(ctx context.Context, cartID string, o store.Order) {
	if s.Redis == nil {
		return
	}
	// shortcut buat deteksi request checkout ganda; DB tetap kebenaran
	idemKey := fmt.Sprintf(redisx.KeyIdemCheckout, cartID)
	_ = s.Redis.Set(ctx, idemKey, o.ID, redisx.TTLIdempotency).Err()

	statusKey := fmt.Sprintf(redisx.KeyOrderStatus, o.ID)
	_ = s.Redis.Set(ctx, statusKey,
		fmt.Sprintf(`{"payment_status":%q}`, o.PaymentStatus), redisx.TTLStatusCache).Err()
}

func (s *Service) publishCreated(ctx context.Context, o store.Order) {
	if s.Producer == nil {
		return
	}
	items := make([]store.ItemPrice, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, store.ItemPrice{
			ProductID:  it.ProductID,
			Qty:        it.Qty,
			PriceCents: it.PriceCents,
		})
	}
	ev := store.Envelope{
		EventID:       uuid.NewString(),
		EventType:     store.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.Service,
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(store.OrderCreatedPayload{
			OrderID:    o.ID,
			CustomerID: o.CustomerID,
			Items:      items,
			TotalCents: o.TotalCents,
		}),
	}
	s.Producer.Publish(store.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkax.EventHeaders(store.EventOrderCreated, 1)...)
}
