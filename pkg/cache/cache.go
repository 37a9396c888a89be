// Package cache is a two level cache: a process local map in front of an
// optional redis instance. Values are stored as JSON.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/matst80/slask-jewelry/pkg/common/jsoncompat"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

type localEntry struct {
	expires time.Time
	data    []byte
}

type Cache struct {
	client   *redis.Client
	mu       sync.Mutex
	memCache map[string]localEntry
	localTTL time.Duration
	now      func() time.Time
}

// New connects to redis at addr. An empty addr gives a memory-only cache.
func New(addr, password string, db int) *Cache {
	c := NewMemory()
	if addr != "" {
		c.client = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		})
	}
	return c
}

func NewMemory() *Cache {
	return &Cache{
		memCache: make(map[string]localEntry),
		localTTL: time.Minute,
		now:      time.Now,
	}
}

func (c *Cache) Get(ctx context.Context, key string, out any) error {
	c.mu.Lock()
	local, found := c.memCache[key]
	if found && !c.now().Before(local.expires) {
		delete(c.memCache, key)
		found = false
	}
	c.mu.Unlock()
	if found {
		return jsoncompat.Unmarshal(local.data, out)
	}
	if c.client == nil {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	if err := jsoncompat.Unmarshal(data, out); err != nil {
		return err
	}
	c.storeLocal(key, data, c.localTTL)
	return nil
}

func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	localTTL := c.localTTL
	if expiration > 0 {
		localTTL = min(expiration, localTTL)
	}
	c.storeLocal(key, data, localTTL)
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) storeLocal(key string, data []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memCache[key] = localEntry{expires: c.now().Add(ttl), data: data}
}

func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
