package offline

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// Entry is a cached response.
type Entry struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// Cache stores entries grouped under versioned cache names.
type Cache interface {
	Get(ctx context.Context, name, key string) (*Entry, bool, error)
	Put(ctx context.Context, name, key string, e *Entry) error
	Names(ctx context.Context) ([]string, error)
	Drop(ctx context.Context, name string) error
}

const redisPrefix = "offline:"

// RedisCache keeps entries in Redis, one string key per entry plus a set of
// known cache names.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func entryKey(name, key string) string {
	return redisPrefix + name + ":" + key
}

func namesKey() string {
	return redisPrefix + "names"
}

func (c *RedisCache) Get(ctx context.Context, name, key string) (*Entry, bool, error) {
	data, err := c.client.Get(ctx, entryKey(name, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var e Entry
	if err := sonic.Unmarshal(data, &e); err != nil {
		return nil, false, err
	}
	return &e, true, nil
}

func (c *RedisCache) Put(ctx context.Context, name, key string, e *Entry) error {
	data, err := sonic.Marshal(e)
	if err != nil {
		return err
	}
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, entryKey(name, key), data, 0)
		pipe.SAdd(ctx, namesKey(), name)
		return nil
	})
	return err
}

func (c *RedisCache) Names(ctx context.Context) ([]string, error) {
	return c.client.SMembers(ctx, namesKey()).Result()
}

func (c *RedisCache) Drop(ctx context.Context, name string) error {
	pattern := entryKey(name, "*")
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return c.client.SRem(ctx, namesKey(), name).Err()
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]Entry
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]map[string]Entry)}
}

func (c *MemoryCache) Get(_ context.Context, name, key string) (*Entry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name][key]
	if !ok {
		return nil, false, nil
	}
	return cloneEntry(e), true, nil
}

func (c *MemoryCache) Put(_ context.Context, name, key string, e *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket, ok := c.entries[name]
	if !ok {
		bucket = make(map[string]Entry)
		c.entries[name] = bucket
	}
	bucket[key] = *cloneEntry(*e)
	return nil
}

func (c *MemoryCache) Names(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	return names, nil
}

func (c *MemoryCache) Drop(_ context.Context, name string) error {
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
	return nil
}

func cloneEntry(e Entry) *Entry {
	body := make([]byte, len(e.Body))
	copy(body, e.Body)
	return &Entry{Status: e.Status, Header: e.Header.Clone(), Body: body}
}

// cacheKey identifies a request by path and query.
func cacheKey(path, rawQuery string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}
