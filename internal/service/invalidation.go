package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-graph/internal/cache"
	"github.com/d60-Lab/social-graph/pkg/logger"
)

// CacheInvalidator 集中定义每类变更后必须丢弃的缓存键。
// 用户列表与图投影嵌入同一份分数/爱好数据，所以两个集合视图恒成对失效；
// 删除失败只记日志，残留的脏键靠 TTL 自愈
type CacheInvalidator struct {
	cache *cache.Cache
}

func NewCacheInvalidator(c *cache.Cache) *CacheInvalidator {
	return &CacheInvalidator{cache: c}
}

// InvalidateUserCache 丢弃 users:all 与 graph:data
func (i *CacheInvalidator) InvalidateUserCache(ctx context.Context) {
	i.drop(ctx, cache.KeyAllUsers, cache.KeyGraph)
}

// InvalidateGraphCache 与 InvalidateUserCache 目标集合相同，语义上区分调用动机
func (i *CacheInvalidator) InvalidateGraphCache(ctx context.Context) {
	i.drop(ctx, cache.KeyGraph, cache.KeyAllUsers)
}

// DropUser 丢弃 user:<id> 单键
func (i *CacheInvalidator) DropUser(ctx context.Context, userID string) {
	i.drop(ctx, cache.UserKey(userID))
}

func (i *CacheInvalidator) drop(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := i.cache.Del(ctx, key); err != nil {
			logger.Warn("invalidate cache key failed", zap.String("key", key), zap.Error(err))
		}
	}
}
