package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hakimelghazi/orderstats/internal/orders"
)

var ErrInvalidUserID = errors.New("user id must be a valid uuid")

// OrderStore reads order records. It never writes.
type OrderStore struct {
	pool *pgxpool.Pool
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]orders.Order, error) {
	uid, err := uuidFromString(userID)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	const query = `
SELECT id::text, user_id::text, status, amount::text
FROM orders
WHERE user_id = $1
ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]orders.Order, 0)
	for rows.Next() {
		var (
			o      orders.Order
			status string
			amount string
		)
		if err := rows.Scan(&o.ID, &o.UserID, &status, &amount); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("order %s amount %q: %w", o.ID, amount, err)
		}
		o.Status = orders.Status(status)
		o.Amount = d.InexactFloat64()
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

func uuidFromString(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}
