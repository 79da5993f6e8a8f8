package infra

import (
	"context"
	"errors"
	"fmt"

	"redirect-gateway/redirect/domain"

	"github.com/redis/go-redis/v9"
)

// redisClient é o subconjunto de redis.Cmdable usado aqui.
// *redis.Client, *redis.ClusterClient e redis.UniversalClient satisfazem.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

type RedisLookup struct {
	rdb    redisClient
	prefix string
}

type RedisOption func(*RedisLookup)

// WithKeyPrefix prefixa todas as chaves consultadas (ex: "redirect:").
func WithKeyPrefix(prefix string) RedisOption {
	return func(l *RedisLookup) { l.prefix = prefix }
}

func NewRedisLookup(rdb redisClient, opts ...RedisOption) *RedisLookup {
	l := &RedisLookup{rdb: rdb}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Get implementa domain.Lookup. redis.Nil vira domain.ErrNotFound.
func (l *RedisLookup) Get(ctx context.Context, key domain.Key) (domain.Target, error) {
	v, err := l.rdb.Get(ctx, l.prefix+string(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %q: %w", l.prefix+string(key), err)
	}
	return domain.Target(v), nil
}

func (l *RedisLookup) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}
