package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepo struct{ DB *pgxpool.Pool }

func (r *ReviewRepo) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, product_id, name, description, date
		FROM reviews WHERE product_id=$1
		ORDER BY date DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Name, &rv.Description, &rv.Date); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *ReviewRepo) Get(ctx context.Context, productID, id string) (Review, error) {
	var rv Review
	err := r.DB.QueryRow(ctx, `
		SELECT id, product_id, name, description, date
		FROM reviews WHERE id=$2 AND product_id=$1`, productID, id,
	).Scan(&rv.ID, &rv.ProductID, &rv.Name, &rv.Description, &rv.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	return rv, err
}

// Create mengisi product_id dari path, bukan dari body (nested route).
func (r *ReviewRepo) Create(ctx context.Context, productID string, rv Review) (Review, error) {
	if rv.Name == "" || rv.Description == "" {
		return Review{}, fmt.Errorf("%w: name and description required", ErrInvalidInput)
	}
	var exists bool
	if err := r.DB.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, productID).Scan(&exists); err != nil {
		return Review{}, err
	}
	if !exists {
		return Review{}, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	rv.ID = uuid.NewString()
	rv.ProductID = productID
	err := r.DB.QueryRow(ctx, `
		INSERT INTO reviews(id, product_id, name, description)
		VALUES ($1,$2,$3,$4)
		RETURNING date`,
		rv.ID, rv.ProductID, rv.Name, rv.Description,
	).Scan(&rv.Date)
	if err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, productID, id string) error {
	ct, err := r.DB.Exec(ctx,
		`DELETE FROM reviews WHERE id=$2 AND product_id=$1`, productID, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	return nil
}
