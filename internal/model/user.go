package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringList 以 JSON 文本落库的字符串数组（postgres / sqlite 通用）
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return errors.New("StringList: unsupported column type")
	}
}

// User 用户。popularity_score 为派生字段，仅由 PopularityService 写入
type User struct {
	ID              string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username        string     `json:"username" gorm:"type:varchar(64);uniqueIndex:idx_user_username;not null"`
	Age             int        `json:"age" gorm:"not null;check:chk_user_age,age >= 0 AND age <= 150"`
	Hobbies         StringList `json:"hobbies" gorm:"type:text"`
	PopularityScore float64    `json:"popularityScore" gorm:"type:decimal(10,2);index:idx_user_popularity;not null;default:0"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	// Friends 当前好友 id 列表，读取时由关系表填充，不落库
	Friends []string `json:"friends" gorm:"-"`
}

func (User) TableName() string { return "users" }
