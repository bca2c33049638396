package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ariefcatur/go-storefront.git/internal/checkout"
	"github.com/ariefcatur/go-storefront.git/internal/store"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

// memStore meniru semantik repo: CreateFromCart snapshot harga saat dipanggil
// dan menghapus cart secara atomik.
type memStore struct {
	mu       sync.Mutex
	carts    map[string]store.Cart
	products map[string]store.Product
	orders   map[string]store.Order
}

func newMemStore() *memStore {
	return &memStore{
		carts:    map[string]store.Cart{},
		products: map[string]store.Product{},
		orders:   map[string]store.Order{},
	}
}

func (m *memStore) addProduct(title string, priceCents int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.products[id] = store.Product{ID: id, Title: title, PriceCents: priceCents}
	return id
}

func (m *memStore) setPrice(productID string, priceCents int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.products[productID]
	p.PriceCents = priceCents
	m.products[productID] = p
}

func (m *memStore) addCart(items map[string]int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	c := store.Cart{ID: id}
	for pid, qty := range items {
		p := m.products[pid]
		c.Items = append(c.Items, store.CartItem{
			ID: uuid.NewString(), CartID: id, ProductID: pid, Qty: qty,
			Product: store.ProductSummary{ID: pid, Title: p.Title, PriceCents: p.PriceCents},
		})
	}
	m.carts[id] = c
	return id
}

func (m *memStore) GetWithItems(ctx context.Context, cartID string) (store.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		return store.Cart{}, fmt.Errorf("cart %s: %w", cartID, store.ErrNotFound)
	}
	return c, nil
}

func (m *memStore) CreateFromCart(ctx context.Context, cartID, customerID string) (store.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok || len(c.Items) == 0 {
		return store.Order{}, fmt.Errorf("cart %s has no items: %w", cartID, store.ErrInvalidInput)
	}
	o := store.Order{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		PaymentStatus: store.PaymentPending,
	}
	for _, it := range c.Items {
		price := m.products[it.ProductID].PriceCents // snapshot saat checkout
		o.Items = append(o.Items, store.OrderItem{
			ID: uuid.NewString(), OrderID: o.ID, ProductID: it.ProductID,
			Qty: it.Qty, PriceCents: price,
			Product: store.ProductSummary{ID: it.ProductID, Title: it.Product.Title, PriceCents: price},
		})
		o.TotalCents += it.Qty * price
	}
	delete(m.carts, cartID)
	m.orders[o.ID] = o
	return o, nil
}

type capturePub struct {
	mu       sync.Mutex
	messages [][]byte
}

func (p *capturePub) Publish(key, value []byte, headers ...kafkago.Header) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, value)
}

func newService(m *memStore, pub *capturePub) *checkout.Service {
	return &checkout.Service{Carts: m, Orders: m, Producer: pub, Service: "test"}
}

func TestPlaceOrder_CopiesCartAndDeletesIt(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	pub := &capturePub{}
	svc := newService(m, pub)

	p := m.addProduct("widget", 1000)
	q := m.addProduct("gadget", 500)
	cartID := m.addCart(map[string]int{p: 2, q: 1})

	order, err := svc.PlaceOrder(ctx, cartID, "cust-1")
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if order.PaymentStatus != store.PaymentPending {
		t.Fatalf("expected PENDING, got %s", order.PaymentStatus)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	if order.TotalCents != 2*1000+500 {
		t.Fatalf("expected total 2500, got %d", order.TotalCents)
	}
	byProduct := map[string]store.OrderItem{}
	for _, it := range order.Items {
		byProduct[it.ProductID] = it
	}
	if it := byProduct[p]; it.Qty != 2 || it.PriceCents != 1000 {
		t.Fatalf("item P: got qty=%d price=%d", it.Qty, it.PriceCents)
	}
	if it := byProduct[q]; it.Qty != 1 || it.PriceCents != 500 {
		t.Fatalf("item Q: got qty=%d price=%d", it.Qty, it.PriceCents)
	}

	if _, err := m.GetWithItems(ctx, cartID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("cart should be gone after checkout, got %v", err)
	}
	if len(pub.messages) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.messages))
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	m := newMemStore()
	svc := newService(m, &capturePub{})

	cartID := m.addCart(nil)

	_, err := svc.PlaceOrder(context.Background(), cartID, "cust-1")
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(m.orders) != 0 {
		t.Fatalf("no order should exist, got %d", len(m.orders))
	}
}

func TestPlaceOrder_MissingCart(t *testing.T) {
	m := newMemStore()
	svc := newService(m, &capturePub{})

	_, err := svc.PlaceOrder(context.Background(), uuid.NewString(), "cust-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlaceOrder_MalformedCartID(t *testing.T) {
	m := newMemStore()
	svc := newService(m, &capturePub{})

	_, err := svc.PlaceOrder(context.Background(), "not-a-uuid", "cust-1")
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlaceOrder_PriceSnapshot(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newService(m, &capturePub{})

	p := m.addProduct("widget", 1000)
	cartID := m.addCart(map[string]int{p: 1})

	order, err := svc.PlaceOrder(ctx, cartID, "cust-1")
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	// harga naik setelah checkout, order item tidak boleh ikut naik
	m.setPrice(p, 9999)

	if got := order.Items[0].PriceCents; got != 1000 {
		t.Fatalf("snapshot price changed: got %d", got)
	}
	if got := m.orders[order.ID].Items[0].PriceCents; got != 1000 {
		t.Fatalf("stored snapshot price changed: got %d", got)
	}
}

func TestPlaceOrder_ConcurrentSameCart(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	svc := newService(m, &capturePub{})

	p := m.addProduct("widget", 1000)
	cartID := m.addCart(map[string]int{p: 1})

	const N = 8
	var (
		mu        sync.Mutex
		successes int
	)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < N; i++ {
		g.Go(func() error {
			_, err := svc.PlaceOrder(ctx, cartID, "cust-1")
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return nil
			}
			if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidInput) {
				return nil // kalah race, itu memang yang diharapkan
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 successful checkout, got %d", successes)
	}
	if len(m.orders) != 1 {
		t.Fatalf("expected exactly 1 order, got %d", len(m.orders))
	}
}
