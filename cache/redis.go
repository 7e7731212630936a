package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis adapts a redis client to the Cache interface. Expiry is delegated to
// Redis key TTLs.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	v, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return v, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	r.client.Set(ctx, key, value, ttl)
}
