package model

import "time"

// Hobby 全局爱好词表，仅做候选项目录，不约束用户 hobbies 字段
type Hobby struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Name      string `gorm:"type:varchar(64);uniqueIndex:idx_hobby_name;not null"`
	CreatedAt time.Time
}

func (Hobby) TableName() string { return "hobbies" }
