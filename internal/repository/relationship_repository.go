package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graph/internal/model"
)

type RelationshipRepository interface {
	// CreatePair 在一个事务内写入 (a,b) 与 (b,a) 两行，失败整体回滚
	CreatePair(ctx context.Context, a, b string) error
	// DeletePair 在一个事务内删除两个方向的行，返回是否删到了东西
	DeletePair(ctx context.Context, a, b string) (bool, error)
	// ExistsPair 任一方向存在即认为这条逻辑边存在
	ExistsPair(ctx context.Context, a, b string) (bool, error)
	// Friends 单向一跳查询；存储对称，结果即完整好友集合
	Friends(ctx context.Context, userID string) ([]string, error)
	// CountFor 该用户作为任一端出现的行数（删除守卫用）
	CountFor(ctx context.Context, userID string) (int64, error)
	// ListAll 按 (user_id, friend_id) 排序返回全部行
	ListAll(ctx context.Context) ([]*model.Relationship, error)
}

type relationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

func (r *relationshipRepository) CreatePair(ctx context.Context, a, b string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := []model.Relationship{
			{ID: uuid.New().String(), UserID: a, FriendID: b},
			{ID: uuid.New().String(), UserID: b, FriendID: a},
		}
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *relationshipRepository) DeletePair(ctx context.Context, a, b string) (bool, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
			Delete(&model.Relationship{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted > 0, err
}

func (r *relationshipRepository) ExistsPair(ctx context.Context, a, b string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Relationship{}).
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *relationshipRepository) Friends(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Relationship{}).
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	return ids, err
}

func (r *relationshipRepository) CountFor(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Relationship{}).
		Where("user_id = ? OR friend_id = ?", userID, userID).
		Count(&cnt).Error
	return cnt, err
}

func (r *relationshipRepository) ListAll(ctx context.Context) ([]*model.Relationship, error) {
	var res []*model.Relationship
	err := r.db.WithContext(ctx).Order("user_id, friend_id").Find(&res).Error
	return res, err
}
