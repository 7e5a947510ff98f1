package model

import "time"

// Relationship 好友关系的单向行；一条逻辑边恒为两行 (A,B) 与 (B,A)，
// 成对写入、成对删除，任何时刻不允许只存在其中一行
type Relationship struct {
	ID       string `gorm:"primaryKey;type:varchar(36)"`
	UserID   string `gorm:"type:varchar(36);index:idx_rel_user;index:idx_rel_pair,unique;not null;check:chk_rel_not_self,user_id <> friend_id"`
	FriendID string `gorm:"type:varchar(36);index:idx_rel_friend;not null;index:idx_rel_pair,unique"`
	// idx_rel_pair = (user_id, friend_id)，兜底并发下的重复建边
	CreatedAt time.Time
}

func (Relationship) TableName() string { return "relationships" }
