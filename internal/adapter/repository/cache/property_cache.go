package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MongoPete/airbnb-clone/internal/domain"
	"github.com/MongoPete/airbnb-clone/internal/platform/logger"
)

const (
	keyPrefix = "property:"
	localTTL  = 5 * time.Minute
)

// Remote is the shared second cache level.
type Remote interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// PropertyCache keeps listings in an in-process LRU backed by an optional
// shared remote cache.
type PropertyCache struct {
	local  *ccache.Cache[*domain.Property]
	remote Remote
	ttl    time.Duration
	logger *logger.Logger
}

// NewPropertyCache creates a cache holding at most maxSize listings locally.
// remote may be nil.
func NewPropertyCache(maxSize int64, remote Remote, ttl time.Duration, log *logger.Logger) *PropertyCache {
	return &PropertyCache{
		local:  ccache.New(ccache.Configure[*domain.Property]().MaxSize(maxSize)),
		remote: remote,
		ttl:    ttl,
		logger: log.Named("PropertyCache"),
	}
}

// Get returns the cached property, or nil on a miss.
func (c *PropertyCache) Get(ctx context.Context, id string) (*domain.Property, error) {
	key := keyPrefix + id
	if item := c.local.Get(key); item != nil && !item.Expired() {
		c.logger.Debug("Cache hit (local)", zap.String("key", key))
		return item.Value(), nil
	}
	if c.remote == nil {
		return nil, nil
	}

	data, ok, err := c.remote.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var property domain.Property
	if err := json.Unmarshal(data, &property); err != nil {
		c.logger.Warn("Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = c.remote.Delete(ctx, key)
		return nil, nil
	}
	c.local.Set(key, &property, localTTL)
	c.logger.Debug("Cache hit (remote)", zap.String("key", key))
	return &property, nil
}

// Set stores property on both levels.
func (c *PropertyCache) Set(ctx context.Context, property *domain.Property) error {
	key := keyPrefix + property.ID
	c.local.Set(key, property, localTTL)
	if c.remote == nil {
		return nil
	}
	data, err := json.Marshal(property)
	if err != nil {
		return err
	}
	return c.remote.Set(ctx, key, data, c.ttl)
}

// Delete evicts id from both levels.
func (c *PropertyCache) Delete(ctx context.Context, id string) error {
	key := keyPrefix + id
	c.local.Delete(key)
	if c.remote == nil {
		return nil
	}
	return c.remote.Delete(ctx, key)
}

// Close stops the local cache's background worker.
func (c *PropertyCache) Close() {
	c.local.Stop()
}

// RedisRemote stores entries in Redis.
type RedisRemote struct {
	client *redis.Client
}

func NewRedisRemote(client *redis.Client) *RedisRemote {
	return &RedisRemote{client: client}
}

func (r *RedisRemote) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *RedisRemote) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisRemote) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// MemcachedRemote stores entries in Memcached.
type MemcachedRemote struct {
	client *memcache.Client
}

func NewMemcachedRemote(servers ...string) *MemcachedRemote {
	return &MemcachedRemote{client: memcache.New(servers...)}
}

func (m *MemcachedRemote) Get(_ context.Context, key string) ([]byte, bool, error) {
	item, err := m.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return item.Value, true, nil
}

func (m *MemcachedRemote) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	return m.client.Set(&memcache.Item{Key: key, Value: value, Expiration: int32(ttl.Seconds())})
}

func (m *MemcachedRemote) Delete(_ context.Context, key string) error {
	err := m.client.Delete(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}

var (
	_ domain.PropertyCache = (*PropertyCache)(nil)
	_ Remote               = (*RedisRemote)(nil)
	_ Remote               = (*MemcachedRemote)(nil)
)
