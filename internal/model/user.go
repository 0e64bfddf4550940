package model

// User 用户表 — 对应 users
// UserID 由外部身份提供方签发，统一以字符串存储
type User struct {
	UserID   string `gorm:"type:varchar(64);primaryKey"  json:"user_id"`
	Username string `gorm:"type:varchar(255);not null"   json:"username"`
	Timestamps
}

// TableName 指定表名
func (User) TableName() string { return "users" }
