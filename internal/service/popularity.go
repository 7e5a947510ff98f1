package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-graph/internal/cache"
	"github.com/d60-Lab/social-graph/internal/repository"
	"github.com/d60-Lab/social-graph/pkg/logger"
)

// PopularityService 维护派生的人气分：
// score = 去重好友数 + 0.5 × 与各好友的共同爱好总数
type PopularityService struct {
	users repository.UserRepository
	rels  repository.RelationshipRepository
	cache *cache.Cache
}

func NewPopularityService(users repository.UserRepository, rels repository.RelationshipRepository, c *cache.Cache) *PopularityService {
	return &PopularityService{users: users, rels: rels, cache: c}
}

// ComputeScore 用户不存在时返回 0 而非报错——本方法总是作为其他
// 变更的副作用被调用，不允许打断主流程
func (s *PopularityService) ComputeScore(ctx context.Context, userID string) (float64, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, nil
	}

	friendIDs, err := s.rels.Friends(ctx, userID)
	if err != nil {
		return 0, err
	}
	unique := make(map[string]struct{}, len(friendIDs))
	for _, id := range friendIDs {
		unique[id] = struct{}{}
	}

	// 逐个好友统计共同爱好：好友侧按包含判断，本人侧逐元素扫描，
	// 本人列表中的重复爱好会被重复计入
	totalShared := 0
	for _, fid := range friendIDs {
		friend, err := s.users.GetByID(ctx, fid)
		if err != nil {
			return 0, err
		}
		if friend == nil {
			continue
		}
		friendHas := make(map[string]struct{}, len(friend.Hobbies))
		for _, h := range friend.Hobbies {
			friendHas[h] = struct{}{}
		}
		for _, h := range user.Hobbies {
			if _, ok := friendHas[h]; ok {
				totalShared++
			}
		}
	}

	return float64(len(unique)) + 0.5*float64(totalShared), nil
}

// RefreshScore 重算并落库，随后丢弃该用户的单键缓存。
// 任何失败只记日志：派生数据刷新失败不得让触发它的主变更失败
func (s *PopularityService) RefreshScore(ctx context.Context, userID string) {
	score, err := s.ComputeScore(ctx, userID)
	if err != nil {
		logger.Warn("compute popularity score failed", zap.String("user", userID), zap.Error(err))
		return
	}
	if err := s.users.UpdateScore(ctx, userID, score); err != nil {
		logger.Warn("persist popularity score failed", zap.String("user", userID), zap.Error(err))
		return
	}
	if err := s.cache.Del(ctx, cache.UserKey(userID)); err != nil {
		logger.Warn("drop user cache failed", zap.String("user", userID), zap.Error(err))
	}
}

// RefreshScores 顺序刷新一批用户；单用户内部的 读→算→写→失效 顺序不变
func (s *PopularityService) RefreshScores(ctx context.Context, userIDs []string) {
	for _, id := range userIDs {
		s.RefreshScore(ctx, id)
	}
}
