package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/social-graph/internal/model"
)

type HobbyRepository interface {
	// Add 幂等：重复添加同名爱好不报错、不产生第二条记录
	Add(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
	// ListNames 按名称升序返回词表
	ListNames(ctx context.Context) ([]string, error)
}

type hobbyRepository struct{ db *gorm.DB }

func NewHobbyRepository(db *gorm.DB) HobbyRepository { return &hobbyRepository{db: db} }

func (r *hobbyRepository) Add(ctx context.Context, name string) error {
	h := &model.Hobby{ID: uuid.New().String(), Name: name}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(h).Error
}

func (r *hobbyRepository) Remove(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.Hobby{}).Error
}

func (r *hobbyRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&model.Hobby{}).Order("name").Pluck("name", &names).Error
	return names, err
}
