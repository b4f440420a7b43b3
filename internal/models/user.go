package models

import (
	"strings"
	"time"
)

// User 用户表，username 即公开主页标识
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                           // 主键
	Username     string     `gorm:"size:150;uniqueIndex;not null" json:"username"`  // 用户名
	FirstName    string     `gorm:"size:150;not null;default:''" json:"first_name"` // 名
	LastName     string     `gorm:"size:150;not null;default:''" json:"last_name"`  // 姓
	Email        string     `gorm:"size:254;index;not null;default:''" json:"-"`    // 邮箱（仅本人资料接口返回）
	PasswordHash string     `gorm:"not null" json:"-"`                              // 密码哈希（不返回给前端）
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                    // Token 版本（改名/改密后递增）
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`                        // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"date_joined"`                       // 注册时间
	UpdatedAt    time.Time  `json:"-"`                                              // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// DisplayName 展示名称，姓名为空时回退到用户名
func (u User) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full == "" {
		return u.Username
	}
	return full
}
