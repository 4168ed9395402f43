package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakimelghazi/orderstats/internal/orders"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping Postgres tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, dsn)
	if err != nil {
		t.Skipf("skipping Postgres tests: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, Schema)
	require.NoError(t, err)
	return pool
}

func TestUUIDFromString(t *testing.T) {
	id := uuid.New()
	got, err := uuidFromString(id.String())
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.Equal(t, [16]byte(id), got.Bytes)

	_, err = uuidFromString("user-1")
	require.Error(t, err)
}

func TestListByUserRejectsInvalidID(t *testing.T) {
	store := NewOrderStore(nil)

	_, err := store.ListByUser(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, ErrInvalidUserID)
}

func TestNewPoolRejectsBadURL(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz")
	require.Error(t, err)
}

func TestListByUser(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	store := NewOrderStore(pool)

	userID := uuid.New()
	other := uuid.New()
	insert := func(user uuid.UUID, status string, amount string) {
		_, err := pool.Exec(ctx,
			`INSERT INTO orders (id, user_id, status, amount) VALUES ($1, $2, $3, $4::numeric)`,
			uuid.New(), user, status, amount,
		)
		require.NoError(t, err)
	}
	insert(userID, "paid", "10.50")
	insert(userID, "cancelled", "1000")
	insert(userID, "paid", "19.50")
	insert(other, "paid", "1")
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM orders WHERE user_id IN ($1, $2)`, userID, other)
	})

	list, err := store.ListByUser(ctx, userID.String())
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, o := range list {
		assert.Equal(t, userID.String(), o.UserID)
	}

	avg, err := orders.AverageOrderValue(list)
	require.NoError(t, err)
	assert.Equal(t, 15.0, avg)

	empty, err := store.ListByUser(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
