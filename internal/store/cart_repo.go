package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepo struct{ DB *pgxpool.Pool }

func (r *CartRepo) Create(ctx context.Context) (Cart, error) {
	c := Cart{ID: uuid.NewString()}
	err := r.DB.QueryRow(ctx,
		`INSERT INTO carts(id) VALUES ($1) RETURNING created_at`, c.ID,
	).Scan(&c.CreatedAt)
	if err != nil {
		return Cart{}, err
	}
	return c, nil
}

// GetWithItems load cart + items + ringkasan produk dalam 2 query.
func (r *CartRepo) GetWithItems(ctx context.Context, cartID string) (Cart, error) {
	var c Cart
	err := r.DB.QueryRow(ctx,
		`SELECT id, created_at FROM carts WHERE id=$1`, cartID,
	).Scan(&c.ID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Cart{}, fmt.Errorf("cart %s: %w", cartID, ErrNotFound)
	}
	if err != nil {
		return Cart{}, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.qty, p.id, p.title, p.price_cents
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id=$1
		ORDER BY p.title`, cartID)
	if err != nil {
		return Cart{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var it CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Qty,
			&it.Product.ID, &it.Product.Title, &it.Product.PriceCents); err != nil {
			return Cart{}, err
		}
		c.Items = append(c.Items, it)
	}
	return c, rows.Err()
}

func (r *CartRepo) Delete(ctx context.Context, cartID string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM carts WHERE id=$1`, cartID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("cart %s: %w", cartID, ErrNotFound)
	}
	return nil
}

// AddItem: upsert. Kalau (cart, product) sudah ada, qty ditambah, bukan di-replace.
func (r *CartRepo) AddItem(ctx context.Context, cartID, productID string, qty int) (CartItem, error) {
	if qty < 1 {
		return CartItem{}, fmt.Errorf("%w: qty must be >= 1", ErrInvalidInput)
	}

	// validasi produk dulu biar errornya jelas, FK violation terlalu opaque
	var it CartItem
	err := r.DB.QueryRow(ctx,
		`SELECT id, title, price_cents FROM products WHERE id=$1`, productID,
	).Scan(&it.Product.ID, &it.Product.Title, &it.Product.PriceCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return CartItem{}, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	if err != nil {
		return CartItem{}, err
	}

	err = r.DB.QueryRow(ctx, `
		INSERT INTO cart_items(id, cart_id, product_id, qty)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty
		RETURNING id, cart_id, product_id, qty`,
		uuid.NewString(), cartID, productID, qty,
	).Scan(&it.ID, &it.CartID, &it.ProductID, &it.Qty)
	if err != nil {
		// FK ke carts gagal -> cart tidak ada
		return CartItem{}, fmt.Errorf("cart %s: %w", cartID, ErrNotFound)
	}
	return it, nil
}

// UpdateItemQty set qty absolut (PATCH), bukan increment.
func (r *CartRepo) UpdateItemQty(ctx context.Context, cartID, itemID string, qty int) (CartItem, error) {
	if qty < 1 {
		return CartItem{}, fmt.Errorf("%w: qty must be >= 1", ErrInvalidInput)
	}
	var it CartItem
	err := r.DB.QueryRow(ctx, `
		UPDATE cart_items SET qty=$3
		WHERE id=$2 AND cart_id=$1
		RETURNING id, cart_id, product_id, qty`,
		cartID, itemID, qty,
	).Scan(&it.ID, &it.CartID, &it.ProductID, &it.Qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return CartItem{}, fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return CartItem{}, err
	}
	return it, nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	ct, err := r.DB.Exec(ctx,
		`DELETE FROM cart_items WHERE id=$2 AND cart_id=$1`, cartID, itemID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}
	return nil
}
