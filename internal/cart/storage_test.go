package cart

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySlotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlots()

	a := Open(ctx, slots.For("a"))
	require.NoError(t, a.Add(ctx, itemA(), 1))

	assert.Empty(t, Open(ctx, slots.For("b")).Items())
	assert.Len(t, Open(ctx, slots.For("a")).Items(), 1)
}

func TestFileStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs := NewFileSlots(filepath.Join(dir, "carts")).For("../escape")

	raw, ok, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)

	require.NoError(t, fs.Save(ctx, []byte(`[{"productId":"A","quantity":1,"stock":2}]`)))
	raw, ok, err = fs.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"productId":"A","quantity":1,"stock":2}]`, string(raw))

	entries, err := os.ReadDir(filepath.Join(dir, "carts"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "escape.json", entries[0].Name())
}

type fakeRedis struct {
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = append([]byte(nil), value.([]byte)...)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisStorage(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	slots := NewRedisSlots(rdb, time.Hour)

	s := Open(ctx, slots.For("sess-1"))
	require.NoError(t, s.Add(ctx, itemA(), 2))

	assert.Contains(t, rdb.data, "cart:sess-1")
	assert.Equal(t, time.Hour, rdb.ttls["cart:sess-1"])
	assert.Equal(t, 2, Open(ctx, slots.For("sess-1")).Count())

	rdb.err = errors.New("connection refused")
	_, _, err := slots.For("sess-1").Load(ctx)
	assert.Error(t, err)
}

func TestPostgresStorageLoad(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT payload FROM cart_slots WHERE slot=\$1`).
		WithArgs("cart:s1").
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow([]byte(`[{"productId":"A","quantity":2,"stock":5,"price":10}]`)))

	mock.ExpectQuery(`SELECT payload FROM cart_slots WHERE slot=\$1`).
		WithArgs("cart:s2").
		WillReturnError(pgx.ErrNoRows)

	slots := NewPostgresSlots(mock)

	s := Open(ctx, slots.For("s1"))
	assert.Equal(t, 20.0, s.Total())

	raw, ok, err := slots.For("s2").Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorageSave(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO cart_slots`).
		WithArgs("cart:s1", `[]`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewPostgresStorage(mock, "cart:s1").Save(ctx, []byte(`[]`)))
	require.NoError(t, mock.ExpectationsWereMet())
}
