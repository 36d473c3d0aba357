//go:build integration

package integration

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/testutil"
)

func dress() cart.Item {
	return cart.Item{ProductID: "p1", Name: "Silk Dress", Price: 75, Color: "red", Size: "M", Stock: 5}
}

func TestPostgresCartSlotsSurviveReopen(t *testing.T) {
	dsn := testutil.StartPostgres(t)
	logger := log.New(io.Discard, "", 0)
	ctx := context.Background()

	require.NoError(t, db.RunMigrations(dsn, logger))
	// A second run is a no-op.
	require.NoError(t, db.RunMigrations(dsn, logger))

	pool, err := db.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	slots := cart.NewPostgresSlots(pool)

	s := cart.Open(ctx, slots.For("sess-a"), cart.WithLogger(logger))
	require.NoError(t, s.Add(ctx, dress(), 2))
	require.NoError(t, s.UpdateQuantity(ctx, dress().Key(), 3))
	require.NoError(t, s.Err())

	reopened := cart.Open(ctx, slots.For("sess-a"))
	assert.Equal(t, 3, reopened.Count())
	assert.Equal(t, 225.0, reopened.Total())

	assert.Empty(t, cart.Open(ctx, slots.For("sess-b")).Items())

	reopened.Clear(ctx)
	assert.Empty(t, cart.Open(ctx, slots.For("sess-a")).Items())
}

func TestRedisCartSlotsSurviveReopen(t *testing.T) {
	addr := testutil.StartRedis(t)
	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	slots := cart.NewRedisSlots(rdb, time.Hour)

	s := cart.Open(ctx, slots.For("sess-a"))
	require.NoError(t, s.Add(ctx, dress(), 1))
	require.NoError(t, s.Err())

	ttl, err := rdb.TTL(ctx, "cart:sess-a").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	assert.Equal(t, 1, cart.Open(ctx, slots.For("sess-a")).Count())
}
