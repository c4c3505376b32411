package infra

import (
	"context"
	"errors"
	"strings"
	"time"

	"painel-web/middleware/pageinit/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStorage guarda as preferências de cada escopo em um hash
// `<prefix>:<scope>`. Escritas renovam o TTL do hash.
type RedisStorage struct {
	rdb redis.UniversalClient

	prefix string
	ttl    time.Duration
}

var _ domain.Storage = (*RedisStorage)(nil)

type RedisStorageOption func(*RedisStorage)

func WithStoragePrefix(prefix string) RedisStorageOption {
	return func(s *RedisStorage) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithStorageTTL(d time.Duration) RedisStorageOption {
	return func(s *RedisStorage) { s.ttl = d }
}

func NewRedisStorage(rdb redis.UniversalClient, opts ...RedisStorageOption) *RedisStorage {
	s := &RedisStorage{
		rdb:    rdb,
		prefix: "pageinit:prefs",
		ttl:    30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStorage) key(scope string) string {
	return s.prefix + ":" + strings.TrimSpace(scope)
}

func (s *RedisStorage) Get(ctx context.Context, scope, key string) (string, bool, error) {
	if s == nil || s.rdb == nil {
		return "", false, nil
	}
	v, err := s.rdb.HGet(ctx, s.key(scope), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, scope, key, value string) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	k := s.key(scope)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, k, key, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, k, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStorage) Remove(ctx context.Context, scope, key string) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.HDel(ctx, s.key(scope), key).Err()
}
