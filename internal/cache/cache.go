// Package cache is a small JSON cache over Redis. A Helper built without a
// client behaves as an always-missing cache so callers need no nil checks.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrMiss        = errors.New("cache miss")
	ErrUnavailable = errors.New("cache not available")
)

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

type Helper struct {
	client *redis.Client
	prefix string
}

func NewHelper(client *redis.Client, prefix string) *Helper {
	return &Helper{client: client, prefix: prefix}
}

func (h *Helper) key(k string) string {
	return h.prefix + k
}

func (h *Helper) Get(ctx context.Context, key string, dest interface{}) error {
	if h.client == nil {
		return ErrUnavailable
	}
	data, err := h.client.Get(ctx, h.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("cache unmarshal: %w", err)
	}
	return nil
}

func (h *Helper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if h.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return h.client.Set(ctx, h.key(key), data, ttl).Err()
}

func (h *Helper) Delete(ctx context.Context, keys ...string) error {
	if h.client == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = h.key(k)
	}
	return h.client.Del(ctx, full...).Err()
}
