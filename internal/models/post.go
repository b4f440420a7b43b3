package models

import "time"

// Post 文章表
type Post struct {
	ID           uint      `gorm:"primarykey" json:"id"`                      // 主键
	Title        string    `gorm:"size:256;not null" json:"title"`            // 标题
	Text         string    `gorm:"type:text;not null" json:"text"`            // 正文
	PubDate      time.Time `gorm:"not null;index" json:"pub_date"`            // 发布时间，可设为未来实现定时发布
	Image        string    `gorm:"size:500;not null;default:''" json:"image"` // 配图地址
	IsPublished  bool      `gorm:"not null;index" json:"is_published"`        // 是否发布
	AuthorID     uint      `gorm:"not null;index" json:"author_id"`           // 作者，创建后不可修改
	LocationID   *uint     `gorm:"index" json:"location_id"`                  // 地点，删除地点时置空
	CategoryID   *uint     `gorm:"index" json:"category_id"`                  // 分类，删除分类时置空
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                   // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                // 更新时间
	CommentCount int64     `gorm:"-" json:"comment_count"`                    // 评论数，查询时填充

	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
