package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Cache on a Redis backend.
type Redis struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

// RedisOption applies a configuration option to the Redis cache.
type RedisOption func(*Redis)

// WithTTL sets an expiry on cached entries. Zero means no expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		if ttl >= 0 {
			r.ttl = ttl
		}
	}
}

// NewRedis creates a Redis-backed cache against the given address.
func NewRedis(addr string, opts ...RedisOption) *Redis {
	r := &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, r.ttl).Err()
}

func (r *Redis) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}
