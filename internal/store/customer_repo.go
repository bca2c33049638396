package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepo struct{ DB *pgxpool.Pool }

const customerCols = `id, first_name, last_name, email, phone, birth_date, membership`

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.BirthDate, &c.Membership)
	return c, err
}

func (r *CustomerRepo) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+customerCols+` FROM customers ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) Get(ctx context.Context, id string) (Customer, error) {
	c, err := scanCustomer(r.DB.QueryRow(ctx,
		`SELECT `+customerCols+` FROM customers WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return c, err
}

func validateCustomer(c Customer) error {
	if c.Email == "" {
		return fmt.Errorf("%w: email required", ErrInvalidInput)
	}
	if c.Membership != "" && !c.Membership.Valid() {
		return fmt.Errorf("%w: unknown membership %q", ErrInvalidInput, c.Membership)
	}
	return nil
}

func (r *CustomerRepo) Create(ctx context.Context, c Customer) (Customer, error) {
	if err := validateCustomer(c); err != nil {
		return Customer{}, err
	}
	if c.Membership == "" {
		c.Membership = MembershipBronze
	}
	c.ID = uuid.NewString()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO customers(id, first_name, last_name, email, phone, birth_date, membership)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.BirthDate, c.Membership)
	if err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c Customer) (Customer, error) {
	if err := validateCustomer(c); err != nil {
		return Customer{}, err
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE customers
		SET first_name=$2, last_name=$3, email=$4, phone=$5, birth_date=$6, membership=$7
		WHERE id=$1`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.BirthDate, c.Membership)
	if err != nil {
		return Customer{}, err
	}
	if ct.RowsAffected() == 0 {
		return Customer{}, fmt.Errorf("customer %s: %w", c.ID, ErrNotFound)
	}
	return c, nil
}

// Delete menolak kalau customer masih punya order (order tidak pernah dihapus).
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	var n int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE customer_id=$1`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("customer %s has %d order(s): %w", id, n, ErrProtected)
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return nil
}
