package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graph/internal/repository"
	"github.com/d60-Lab/social-graph/pkg/logger"
)

// RelationshipService 对称好友边的建立与拆除。
// 存在性检查与写入之间没有跨请求锁，靠 (user_id, friend_id) 唯一索引
// 兜底并发重复建边，唯一键冲突同样上报 ErrRelationshipExists
type RelationshipService struct {
	users       repository.UserRepository
	rels        repository.RelationshipRepository
	popularity  *PopularityService
	invalidator *CacheInvalidator
}

func NewRelationshipService(
	users repository.UserRepository,
	rels repository.RelationshipRepository,
	popularity *PopularityService,
	invalidator *CacheInvalidator,
) *RelationshipService {
	return &RelationshipService{users: users, rels: rels, popularity: popularity, invalidator: invalidator}
}

func (s *RelationshipService) Create(ctx context.Context, userID, friendID string) error {
	if userID == friendID {
		return ErrSelfRelationship
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	friend, err := s.users.GetByID(ctx, friendID)
	if err != nil {
		return err
	}
	if user == nil || friend == nil {
		return ErrUserNotFound
	}

	exists, err := s.rels.ExistsPair(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if exists {
		return ErrRelationshipExists
	}

	if err := s.rels.CreatePair(ctx, userID, friendID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRelationshipExists
		}
		return err
	}

	s.refreshNeighborhood(ctx, userID, friendID)
	s.invalidator.InvalidateGraphCache(ctx)
	s.invalidator.DropUser(ctx, userID)
	s.invalidator.DropUser(ctx, friendID)
	return nil
}

// Remove 删除不存在的边不算错误，刷新与失效照常执行（幂等）
func (s *RelationshipService) Remove(ctx context.Context, userID, friendID string) error {
	if _, err := s.rels.DeletePair(ctx, userID, friendID); err != nil {
		return err
	}

	s.refreshNeighborhood(ctx, userID, friendID)
	s.invalidator.InvalidateUserCache(ctx)
	s.invalidator.DropUser(ctx, userID)
	s.invalidator.DropUser(ctx, friendID)
	return nil
}

// refreshNeighborhood 刷新两个端点，再刷新两者当前好友的并集。
// 级联固定一跳，不递归；受影响集合查询失败只缩小级联范围，不中断变更
func (s *RelationshipService) refreshNeighborhood(ctx context.Context, userID, friendID string) {
	s.popularity.RefreshScore(ctx, userID)
	s.popularity.RefreshScore(ctx, friendID)

	affected := make(map[string]struct{})
	for _, endpoint := range []string{userID, friendID} {
		friends, err := s.rels.Friends(ctx, endpoint)
		if err != nil {
			logger.Warn("load friends for cascade failed", zap.String("user", endpoint), zap.Error(err))
			continue
		}
		for _, id := range friends {
			affected[id] = struct{}{}
		}
	}
	delete(affected, userID)
	delete(affected, friendID)

	for id := range affected {
		s.popularity.RefreshScore(ctx, id)
	}
}
