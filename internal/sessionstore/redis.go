package sessionstore

import (
	"context"
	"errors"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

type redisStore struct {
	c      *rdb.Client
	prefix string
}

// NewRedis crea un Store respaldado por Redis. El TTL lo maneja Redis.
func NewRedis(addr string, db int, prefix string) Store {
	if prefix == "" {
		prefix = "learnhub:session"
	}
	return &redisStore{
		c:      rdb.NewClient(&rdb.Options{Addr: addr, DB: db}),
		prefix: prefix,
	}
}

func (s *redisStore) key(k string) string { return s.prefix + ":" + k }

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.c.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, rdb.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return s.c.Set(ctx, s.key(key), value, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.c.Del(ctx, s.key(key)).Err()
}

func (s *redisStore) Close() error { return s.c.Close() }
