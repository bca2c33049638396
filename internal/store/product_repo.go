package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepo struct{ DB *pgxpool.Pool }

// ProductFilter: semua field opsional; zero value = tanpa filter.
type ProductFilter struct {
	CollectionID  string
	MinPriceCents int
	MaxPriceCents int
	Search        string // match di title/description
	OrderBy       string // "price" | "-price" | "updated" | "-updated"
	Limit         int
	Offset        int
}

const productCols = `id, title, slug, description, price_cents, inventory, collection_id, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.PriceCents,
		&p.Inventory, &p.CollectionID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProductRepo) List(ctx context.Context, f ProductFilter) ([]Product, error) {
	q := `SELECT ` + productCols + ` FROM products`
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CollectionID != "" {
		add(`collection_id = $%d`, f.CollectionID)
	}
	if f.MinPriceCents > 0 {
		add(`price_cents >= $%d`, f.MinPriceCents)
	}
	if f.MaxPriceCents > 0 {
		add(`price_cents <= $%d`, f.MaxPriceCents)
	}
	if f.Search != "" {
		add(`(title ILIKE '%%'||$%d||'%%' OR description ILIKE '%%'||$%[1]d||'%%')`, f.Search)
	}
	for i, c := range conds {
		if i == 0 {
			q += ` WHERE ` + c
		} else {
			q += ` AND ` + c
		}
	}
	switch f.OrderBy {
	case "price":
		q += ` ORDER BY price_cents`
	case "-price":
		q += ` ORDER BY price_cents DESC`
	case "updated":
		q += ` ORDER BY updated_at`
	case "-updated":
		q += ` ORDER BY updated_at DESC`
	default:
		q += ` ORDER BY title`
	}
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Get(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.DB.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *ProductRepo) Create(ctx context.Context, p Product) (Product, error) {
	if p.Title == "" || p.PriceCents < 0 || p.Inventory < 0 {
		return Product{}, fmt.Errorf("%w: title required, price/inventory must be >= 0", ErrInvalidInput)
	}
	p.ID = uuid.NewString()
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products(id, title, slug, description, price_cents, inventory, collection_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Slug, p.Description, p.PriceCents, p.Inventory, p.CollectionID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p Product) (Product, error) {
	if p.Title == "" || p.PriceCents < 0 || p.Inventory < 0 {
		return Product{}, fmt.Errorf("%w: title required, price/inventory must be >= 0", ErrInvalidInput)
	}
	err := r.DB.QueryRow(ctx, `
		UPDATE products
		SET title=$2, slug=$3, description=$4, price_cents=$5, inventory=$6, collection_id=$7, updated_at=now()
		WHERE id=$1
		RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Slug, p.Description, p.PriceCents, p.Inventory, p.CollectionID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Delete menolak kalau produk masih direferensikan order item (protect-on-delete).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	var n int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM order_items WHERE product_id=$1`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("product %s is referenced by %d order item(s): %w", id, n, ErrProtected)
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}
