package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-graph/internal/cache"
	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
	"github.com/d60-Lab/social-graph/pkg/logger"
)

var validate = validator.New()

type CreateUserInput struct {
	Username string `validate:"required"`
	Age      int    `validate:"gte=0,lte=150"`
	Hobbies  []string
}

// UpdateUserInput 字段为 nil 表示不修改
type UpdateUserInput struct {
	Username *string
	Age      *int
	Hobbies  *[]string
}

// UserService 用户与爱好词表的变更编排：校验 → 落库 → 刷新人气分 → 缓存失效。
// 多步序列是尽力而为的，派生数据步骤失败不回滚已提交的存储变更
type UserService struct {
	users       repository.UserRepository
	rels        repository.RelationshipRepository
	hobbies     repository.HobbyRepository
	popularity  *PopularityService
	invalidator *CacheInvalidator
	cache       *cache.Cache
}

func NewUserService(
	users repository.UserRepository,
	rels repository.RelationshipRepository,
	hobbies repository.HobbyRepository,
	popularity *PopularityService,
	invalidator *CacheInvalidator,
	c *cache.Cache,
) *UserService {
	return &UserService{
		users:       users,
		rels:        rels,
		hobbies:     hobbies,
		popularity:  popularity,
		invalidator: invalidator,
		cache:       c,
	}
}

// GetAllUsers 读穿 users:all，按人气分降序，含好友 id 列表
func (s *UserService) GetAllUsers(ctx context.Context) ([]*model.User, error) {
	return cache.Cached(ctx, s.cache, cache.KeyAllUsers, func(ctx context.Context) ([]*model.User, error) {
		users, err := s.users.List(ctx)
		if err != nil {
			return nil, err
		}
		rels, err := s.rels.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		friendsOf := make(map[string][]string, len(users))
		for _, r := range rels {
			friendsOf[r.UserID] = append(friendsOf[r.UserID], r.FriendID)
		}
		for _, u := range users {
			u.Friends = friendsOf[u.ID]
			if u.Friends == nil {
				u.Friends = []string{}
			}
		}
		return users, nil
	})
}

// GetUser 读穿 user:<id>；用户不存在返回 (nil, nil)，不存在的用户不写缓存
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	key := cache.UserKey(id)
	var cached model.User
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("cache read failed, falling back to source", zap.String("key", key), zap.Error(err))
	}

	user, err := s.loadWithFriends(ctx, id)
	if err != nil || user == nil {
		return user, err
	}
	if sErr := s.cache.Set(ctx, key, user, 0); sErr != nil {
		logger.Warn("cache write failed", zap.String("key", key), zap.Error(sErr))
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validate.Struct(in); err != nil {
		return nil, validationError("%s", err.Error())
	}
	hobbies, err := normalizeHobbies(in.Hobbies)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:              uuid.New().String(),
		Username:        in.Username,
		Age:             in.Age,
		Hobbies:         hobbies,
		PopularityScore: 0,
		Friends:         []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.popularity.RefreshScore(ctx, user.ID)
	s.invalidator.InvalidateGraphCache(ctx)
	return user, nil
}

// UpdateUser 用户不存在时返回 (nil, nil)，按约定不算错误。
// 爱好变更会影响与每个好友的共同爱好数，因此级联刷新全部直接好友
func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	updates := map[string]any{}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, validationError("username is required")
		}
		updates["username"] = username
	}
	if in.Age != nil {
		updates["age"] = *in.Age
	}
	if in.Hobbies != nil {
		hobbies, err := normalizeHobbies(*in.Hobbies)
		if err != nil {
			return nil, err
		}
		updates["hobbies"] = hobbies
	}

	found, err := s.users.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	s.popularity.RefreshScore(ctx, id)
	friends, err := s.rels.Friends(ctx, id)
	if err != nil {
		logger.Warn("load friends for cascade failed", zap.String("user", id), zap.Error(err))
	} else {
		s.popularity.RefreshScores(ctx, friends)
	}

	s.invalidator.InvalidateUserCache(ctx)
	s.invalidator.DropUser(ctx, id)

	return s.loadWithFriends(ctx, id)
}

// DeleteUser 仅允许删除孤立节点；存在任何关系行即拒绝
func (s *UserService) DeleteUser(ctx context.Context, id string) (bool, error) {
	cnt, err := s.rels.CountFor(ctx, id)
	if err != nil {
		return false, err
	}
	if cnt > 0 {
		return false, ErrHasRelationships
	}

	found, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if found {
		s.invalidator.InvalidateGraphCache(ctx)
		s.invalidator.DropUser(ctx, id)
	}
	return found, nil
}

func (s *UserService) GetAllHobbies(ctx context.Context) ([]string, error) {
	return s.hobbies.ListNames(ctx)
}

// AddHobby 幂等；词表独立于任何用户的 hobbies 字段，不触发任何人气分重算
func (s *UserService) AddHobby(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationError("hobby name is required")
	}
	if err := s.hobbies.Add(ctx, name); err != nil {
		return err
	}
	s.invalidator.InvalidateUserCache(ctx)
	s.invalidator.InvalidateGraphCache(ctx)
	return nil
}

// RemoveHobby 只动词表，已选择该爱好的用户不受影响
func (s *UserService) RemoveHobby(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationError("hobby name is required")
	}
	if err := s.hobbies.Remove(ctx, name); err != nil {
		return err
	}
	s.invalidator.InvalidateUserCache(ctx)
	s.invalidator.InvalidateGraphCache(ctx)
	return nil
}

func (s *UserService) loadWithFriends(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	friends, err := s.rels.Friends(ctx, id)
	if err != nil {
		return nil, err
	}
	if friends == nil {
		friends = []string{}
	}
	user.Friends = friends
	return user, nil
}

// normalizeHobbies 写入时裁剪空白；比较永远发生在裁剪后的值上。
// 不去重：同一用户列表内的重复爱好保留（并会重复计入共同爱好数）
func normalizeHobbies(in []string) (model.StringList, error) {
	out := make(model.StringList, 0, len(in))
	for _, h := range in {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, validationError("all hobbies must be non-empty strings")
		}
		out = append(out, h)
	}
	return out, nil
}
