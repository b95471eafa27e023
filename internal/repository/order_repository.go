package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/google/uuid"
)

const orderColumns = `id, customer_id, items, subtotal, discount, tax, total, currency, payment_method, transaction_id, status, created_at`

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `INSERT INTO orders (id, customer_id, items, subtotal, discount, tax, total, currency, payment_method, transaction_id, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING created_at`

	customerID := uuid.NullUUID{}
	if order.CustomerID != nil {
		customerID = uuid.NullUUID{UUID: *order.CustomerID, Valid: true}
	}

	err = r.db.QueryRowContext(ctx, query,
		order.ID,
		customerID,
		itemsJSON,
		order.Subtotal,
		order.Discount,
		order.Tax,
		order.Total,
		order.Currency,
		order.PaymentMethod,
		order.TransactionID,
		order.Status,
	).Scan(&order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

// ListOrders returns orders newest first, optionally restricted to one customer.
func (r *Repository) ListOrders(ctx context.Context, customerID *uuid.UUID) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if customerID != nil {
		query += ` WHERE customer_id = $1`
		args = append(args, *customerID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(s rowScanner) (*domain.Order, error) {
	var order domain.Order
	var customerID uuid.NullUUID
	var itemsJSON []byte
	err := s.Scan(
		&order.ID,
		&customerID,
		&itemsJSON,
		&order.Subtotal,
		&order.Discount,
		&order.Tax,
		&order.Total,
		&order.Currency,
		&order.PaymentMethod,
		&order.TransactionID,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customerID.Valid {
		id := customerID.UUID
		order.CustomerID = &id
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &order, nil
}
