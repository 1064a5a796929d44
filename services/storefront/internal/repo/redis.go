package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/sakhi_shop/services/storefront/internal/cart"
)

// KV is the subset of the redis client the cart backend uses.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisConfig struct {
	URL          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

func (c RedisConfig) New(ctx context.Context) (*redis.Client, error) {
	opts, err := redis.ParseURL(c.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if c.ReadTimeout > 0 {
		opts.ReadTimeout = c.ReadTimeout
	}
	if c.WriteTimeout > 0 {
		opts.WriteTimeout = c.WriteTimeout
	}
	if c.DialTimeout > 0 {
		opts.DialTimeout = c.DialTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisBackend stores each cart under its own key; the TTL is refreshed on every save.
type RedisBackend struct {
	rdb KV
	ttl time.Duration
}

func NewRedisBackend(rdb KV, ttl time.Duration) *RedisBackend {
	return &RedisBackend{rdb: rdb, ttl: ttl}
}

func (b *RedisBackend) key(sessionID string) string {
	return "sakhi_cart:" + sessionID
}

func (b *RedisBackend) Open(sessionID string) cart.Storage {
	return &redisStorage{b: b, key: b.key(sessionID)}
}

func (b *RedisBackend) Delete(ctx context.Context, sessionID string) error {
	return b.rdb.Del(ctx, b.key(sessionID)).Err()
}

type redisStorage struct {
	b   *RedisBackend
	key string
}

func (s *redisStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := s.b.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *redisStorage) Save(ctx context.Context, data []byte) error {
	return s.b.rdb.Set(ctx, s.key, data, s.b.ttl).Err()
}
