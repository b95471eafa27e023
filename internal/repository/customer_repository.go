package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const customerColumns = `id, first_name, last_name, phone, email, is_member, created_at`

func (r *Repository) GetCustomerByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.getCustomer(ctx, query, id)
}

// GetCustomerByPhone is an exact match on the stored, normalised phone number.
func (r *Repository) GetCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`
	return r.getCustomer(ctx, query, phone)
}

func (r *Repository) getCustomer(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&c.Email,
		&c.IsMember,
		&c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &c, nil
}

// CreateCustomer relies on the unique phone constraint so concurrent registrations of
// the same number cannot both succeed.
func (r *Repository) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (id, first_name, last_name, phone, email, is_member)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		c.ID,
		c.FirstName,
		c.LastName,
		c.Phone,
		c.Email,
		c.IsMember,
	).Scan(&c.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrCustomerExists
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}
