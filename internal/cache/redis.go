package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"tenf-admin-go/internal/config"
	"tenf-admin-go/pkg/logger"
)

// namespaceTTL bounds tracking-set growth when invalidation is skipped
// for a long stretch. Entries expire on their own; the set follows a day
// later at worst.
const namespaceTTL = 24 * time.Hour

type redisClient struct {
	rdb    *redis.Client
	log    logger.Logger
	prefix string
}

// Dial opens a Redis connection from config. An empty address means the
// cache is intentionally unconfigured and (nil, nil) is returned.
func Dial(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// New wraps a Redis connection in the best-effort Client contract. A nil
// connection degrades to the Noop client.
func New(rdb *redis.Client, prefix string, log logger.Logger) Client {
	if rdb == nil {
		return Noop{}
	}
	return &redisClient{rdb: rdb, log: log, prefix: prefix}
}

func (c *redisClient) Enabled() bool { return true }

func (c *redisClient) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + keySeparator + key
}

func (c *redisClient) namespaceSetKey(namespace string) string {
	return c.key(namespace + keySeparator + "keys")
}

// guard is the single place the no-throw contract lives: every transport
// error is logged and reported as a plain failure, never returned.
func (c *redisClient) guard(op, key string, err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return err == nil
	}
	c.log.Warn("cache: "+op+" failed", "key", key, "err", err)
	return false
}

func (c *redisClient) Get(ctx context.Context, key string, dest any) bool {
	raw, err := c.rdb.Get(ctx, c.key(key)).Result()
	if !c.guard("get", key, err) {
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		// The store may hold plain strings written outside this layer.
		if s, ok := dest.(*string); ok {
			*s = raw
			return true
		}
		c.log.Warn("cache: undecodable payload", "key", key, "err", err)
		return false
	}
	return true
}

func (c *redisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, ok := c.encode(key, value)
	if !ok {
		return
	}
	err := c.rdb.Set(ctx, c.key(key), payload, ttl).Err()
	c.guard("set", key, err)
}

func (c *redisClient) Delete(ctx context.Context, key string) {
	err := c.rdb.Del(ctx, c.key(key)).Err()
	c.guard("del", key, err)
}

func (c *redisClient) SetWithNamespace(ctx context.Context, namespace, key string, value any, ttl time.Duration) {
	payload, ok := c.encode(key, value)
	if !ok {
		return
	}

	setKey := c.namespaceSetKey(namespace)
	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, c.key(key), payload, ttl)
	pipe.SAdd(ctx, setKey, key)
	pipe.Expire(ctx, setKey, namespaceTTL)
	_, err := pipe.Exec(ctx)
	c.guard("set_with_namespace", key, err)
}

func (c *redisClient) InvalidateNamespace(ctx context.Context, namespace string) {
	setKey := c.namespaceSetKey(namespace)
	keys, err := c.rdb.SMembers(ctx, setKey).Result()
	if !c.guard("smembers", setKey, err) {
		return
	}

	toDelete := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		toDelete = append(toDelete, c.key(key))
	}
	toDelete = append(toDelete, setKey)

	err = c.rdb.Del(ctx, toDelete...).Err()
	c.guard("invalidate_namespace", namespace, err)
}

func (c *redisClient) encode(key string, value any) (string, bool) {
	if s, ok := value.(string); ok {
		return s, true
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache: marshal failed", "key", key, "err", err)
		return "", false
	}
	return string(data), true
}
