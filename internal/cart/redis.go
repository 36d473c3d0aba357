package cart

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV is the subset of redis.Cmdable the storage needs; *redis.Client
// satisfies it.
type RedisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisStorage keeps a slot under one Redis key. Every save refreshes the TTL,
// so abandoned carts expire on their own.
type RedisStorage struct {
	rdb RedisKV
	key string
	ttl time.Duration
}

func NewRedisStorage(rdb RedisKV, key string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{rdb: rdb, key: key, ttl: ttl}
}

func (r *RedisStorage) Load(ctx context.Context) ([]byte, bool, error) {
	raw, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (r *RedisStorage) Save(ctx context.Context, raw []byte) error {
	return r.rdb.Set(ctx, r.key, raw, r.ttl).Err()
}
