package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepo struct{ DB *pgxpool.Pool }

// CreateFromCart: konversi cart jadi order dalam satu transaksi.
// - harga di-snapshot dari products saat ini, bukan referensi live
// - cart dihapus di akhir (cascade ke cart_items)
// - cart yang hilang di tengah jalan (checkout ganda) -> ErrInvalidInput, rollback
func (r *OrderRepo) CreateFromCart(ctx context.Context, cartID, customerID string) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var custID string
	err = tx.QueryRow(ctx, `SELECT id FROM customers WHERE id=$1`, customerID).Scan(&custID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
	}
	if err != nil {
		return Order{}, err
	}

	rows, err := tx.Query(ctx, `
		SELECT ci.product_id, ci.qty, p.title, p.price_cents
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id=$1`, cartID)
	if err != nil {
		return Order{}, err
	}
	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ProductID, &it.Qty, &it.Product.Title, &it.PriceCents); err != nil {
			rows.Close()
			return Order{}, err
		}
		it.Product.ID = it.ProductID
		it.Product.PriceCents = it.PriceCents
		items = append(items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Order{}, err
	}
	if len(items) == 0 {
		// cart kosong ATAU cart sudah keburu dihapus checkout lain
		return Order{}, fmt.Errorf("cart %s has no items: %w", cartID, ErrInvalidInput)
	}

	o := Order{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		PaymentStatus: PaymentPending,
	}
	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].OrderID = o.ID
		o.TotalCents += items[i].Qty * items[i].PriceCents
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders(id, customer_id, payment_status, total_cents)
		VALUES ($1,$2,$3,$4)
		RETURNING placed_at`,
		o.ID, o.CustomerID, o.PaymentStatus, o.TotalCents,
	).Scan(&o.PlacedAt)
	if err != nil {
		return Order{}, err
	}

	// bulk insert items dalam satu round-trip
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO order_items(id, order_id, product_id, qty, price_cents)
			VALUES ($1,$2,$3,$4,$5)`,
			it.ID, it.OrderID, it.ProductID, it.Qty, it.PriceCents)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return Order{}, err
	}

	ct, err := tx.Exec(ctx, `DELETE FROM carts WHERE id=$1`, cartID)
	if err != nil {
		return Order{}, err
	}
	if ct.RowsAffected() == 0 {
		// cart hilang antara precheck dan sini; jangan terbitkan order parsial
		return Order{}, fmt.Errorf("cart %s vanished during checkout: %w", cartID, ErrInvalidInput)
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) GetWithItems(ctx context.Context, orderID string) (Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `
		SELECT id, customer_id, placed_at, payment_status, total_cents
		FROM orders WHERE id=$1`, orderID,
	).Scan(&o.ID, &o.CustomerID, &o.PlacedAt, &o.PaymentStatus, &o.TotalCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return Order{}, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.qty, oi.price_cents, p.title, p.price_cents
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id=$1
		ORDER BY p.title`, orderID)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Qty, &it.PriceCents,
			&it.Product.Title, &it.Product.PriceCents); err != nil {
			return Order{}, err
		}
		it.Product.ID = it.ProductID
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, customer_id, placed_at, payment_status, total_cents
		FROM orders WHERE customer_id=$1
		ORDER BY placed_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.PlacedAt, &o.PaymentStatus, &o.TotalCents); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdatePaymentStatus pakai transition table; status terminal tidak bisa diubah lagi.
func (r *OrderRepo) UpdatePaymentStatus(ctx context.Context, orderID string, to PaymentStatus) (from PaymentStatus, err error) {
	if !to.Valid() {
		return "", fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, to)
	}
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`SELECT payment_status FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&from)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	if !CanTransition(from, to) {
		return "", fmt.Errorf("%w: payment status %s -> %s", ErrInvalidInput, from, to)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE orders SET payment_status=$2 WHERE id=$1`, orderID, to); err != nil {
		return "", err
	}
	return from, tx.Commit(ctx)
}
