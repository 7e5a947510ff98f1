package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-graph/pkg/logger"
)

// 集合视图键；单用户键见 UserKey
const (
	KeyAllUsers = "users:all"
	KeyGraph    = "graph:data"
)

func UserKey(id string) string { return "user:" + id }

// ErrMiss 键不存在。调用方必须把任何其他错误也当作 miss 降级处理
var ErrMiss = errors.New("cache: miss")

// Cache 对 redis 的薄封装：JSON 编码、统一 TTL、错误原样上抛。
// go-redis 自带连接池与惰性重连，Connect/Disconnect 天然幂等
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) TTL() time.Duration { return c.ttl }

// Get 反序列化到 dest；键不存在返回 ErrMiss
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Set ttl<=0 时使用默认 TTL
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	return c.rdb.Set(ctx, key, payload, ttl).Err()
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) Close() error { return c.rdb.Close() }

// Cached 读穿模式：先取缓存，miss 或缓存不可用时回源计算并写回。
// 缓存故障只降级为回源，绝不向上抛
func Cached[T any](ctx context.Context, c *Cache, key string, compute func(context.Context) (T, error)) (T, error) {
	var out T
	err := c.Get(ctx, key, &out)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, ErrMiss) {
		logger.Warn("cache read failed, falling back to source", zap.String("key", key), zap.Error(err))
	}

	out, err = compute(ctx)
	if err != nil {
		return out, err
	}
	if sErr := c.Set(ctx, key, out, 0); sErr != nil {
		logger.Warn("cache write failed", zap.String("key", key), zap.Error(sErr))
	}
	return out, nil
}
