package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trekbooking/internal/user"
	"trekbooking/pkg/config"
)

// Cache is the advisory session cache: a serialized profile keyed by token ID,
// written on sign-in and dropped on sign-out. It only saves a DB round trip;
// any caller that needs correctness (all admin surfaces) re-reads from
// Postgres, and a cache miss is never an error.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache returns nil when Redis is not configured; all methods are
// nil-receiver safe and degrade to a miss.
func NewCache(cfg config.RedisConfig, ttl time.Duration) *Cache {
	if cfg.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

func sessionKey(tokenID string) string {
	return "session:" + tokenID
}

func (c *Cache) PutProfile(ctx context.Context, tokenID string, p *user.Profile) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, sessionKey(tokenID), b, c.ttl).Err()
}

func (c *Cache) GetProfile(ctx context.Context, tokenID string) (*user.Profile, error) {
	if c == nil {
		return nil, ErrMiss
	}
	b, err := c.rdb.Get(ctx, sessionKey(tokenID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, err
	}
	p := &user.Profile{}
	if err := json.Unmarshal(b, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Cache) Drop(ctx context.Context, tokenID string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, sessionKey(tokenID)).Err()
}

var ErrMiss = fmt.Errorf("session cache miss")
