package models

import "time"

// Category 分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                             // 主键
	Title       string    `gorm:"size:256;not null" json:"title"`                   // 标题
	Description string    `gorm:"type:text;not null;default:''" json:"description"` // 描述
	Slug        string    `gorm:"size:64;uniqueIndex;not null" json:"slug"`         // 唯一标识，仅允许字母、数字、- 和 _
	IsPublished bool      `gorm:"not null;index" json:"is_published"`               // 是否发布，未发布时整个分类对外隐藏
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                          // 创建时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
