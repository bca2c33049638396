package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CollectionRepo struct{ DB *pgxpool.Pool }

// List mengembalikan koleksi + jumlah produk per koleksi.
func (r *CollectionRepo) List(ctx context.Context) ([]Collection, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT c.id, c.title, c.featured_product_id, COUNT(p.id)
		FROM collections c
		LEFT JOIN products p ON p.collection_id = c.id
		GROUP BY c.id, c.title, c.featured_product_id
		ORDER BY c.title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Collection
	for rows.Next() {
		var c Collection
		if err := rows.Scan(&c.ID, &c.Title, &c.FeaturedProductID, &c.ProductsCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CollectionRepo) Get(ctx context.Context, id string) (Collection, error) {
	var c Collection
	err := r.DB.QueryRow(ctx, `
		SELECT c.id, c.title, c.featured_product_id,
		       (SELECT COUNT(*) FROM products p WHERE p.collection_id = c.id)
		FROM collections c WHERE c.id=$1`, id,
	).Scan(&c.ID, &c.Title, &c.FeaturedProductID, &c.ProductsCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return Collection{}, fmt.Errorf("collection %s: %w", id, ErrNotFound)
	}
	return c, err
}

func (r *CollectionRepo) Create(ctx context.Context, c Collection) (Collection, error) {
	if c.Title == "" {
		return Collection{}, fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	c.ID = uuid.NewString()
	_, err := r.DB.Exec(ctx,
		`INSERT INTO collections(id, title, featured_product_id) VALUES ($1,$2,$3)`,
		c.ID, c.Title, c.FeaturedProductID)
	if err != nil {
		return Collection{}, err
	}
	return c, nil
}

func (r *CollectionRepo) Update(ctx context.Context, c Collection) (Collection, error) {
	if c.Title == "" {
		return Collection{}, fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	ct, err := r.DB.Exec(ctx,
		`UPDATE collections SET title=$2, featured_product_id=$3 WHERE id=$1`,
		c.ID, c.Title, c.FeaturedProductID)
	if err != nil {
		return Collection{}, err
	}
	if ct.RowsAffected() == 0 {
		return Collection{}, fmt.Errorf("collection %s: %w", c.ID, ErrNotFound)
	}
	return c, nil
}

// Delete menolak kalau koleksi masih punya produk.
func (r *CollectionRepo) Delete(ctx context.Context, id string) error {
	var n int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE collection_id=$1`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("collection %s still has %d product(s): %w", id, n, ErrProtected)
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM collections WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("collection %s: %w", id, ErrNotFound)
	}
	return nil
}
