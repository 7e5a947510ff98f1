package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graph/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	// List 按人气分降序返回全部用户
	List(ctx context.Context) ([]*model.User, error)
	// ListByUsername 按用户名升序返回全部用户（图投影用）
	ListByUsername(ctx context.Context) ([]*model.User, error)
	// Update 返回是否命中了记录
	Update(ctx context.Context, id string, updates map[string]any) (bool, error)
	UpdateScore(ctx context.Context, id string, score float64) error
	// Delete 返回是否删到了记录
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	var res []*model.User
	err := r.db.WithContext(ctx).Order("popularity_score DESC").Find(&res).Error
	return res, err
}

func (r *userRepository) ListByUsername(ctx context.Context) ([]*model.User, error) {
	var res []*model.User
	err := r.db.WithContext(ctx).Order("username").Find(&res).Error
	return res, err
}

func (r *userRepository) Update(ctx context.Context, id string, updates map[string]any) (bool, error) {
	if len(updates) == 0 {
		updates = map[string]any{}
	}
	updates["updated_at"] = time.Now()
	tx := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *userRepository) UpdateScore(ctx context.Context, id string, score float64) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{"popularity_score": score, "updated_at": time.Now()}).Error
}

func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&cnt).Error
	return cnt, err
}
