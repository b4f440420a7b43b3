// Package policy 集中描述内容可见性与作者权限判断。
//
// 文章对作者本人始终可读；对其他人（含匿名）仅在已发布、发布时间已到、
// 且分类为空或已发布时可读。分类的可浏览性没有作者豁免。
// 修改与删除仅限作者本人。
package policy

import (
	"time"

	"github.com/blogicum-next/internal/clock"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

// Policy 可见性与权限判断
type Policy struct {
	clock clock.Clock
}

// New 创建 Policy，clock 为 nil 时使用系统时钟
func New(c clock.Clock) *Policy {
	return &Policy{clock: clock.OrSystem(c)}
}

// Now 当前时间
func (p *Policy) Now() time.Time {
	return p.clock.Now()
}

// IsPublic 不考虑访问者身份时文章是否公开
func (p *Policy) IsPublic(post *models.Post) bool {
	if post == nil || !post.IsPublished {
		return false
	}
	if post.PubDate.After(p.Now()) {
		return false
	}
	return categoryAllowsPost(post)
}

// IsReadable 访问者能否阅读文章
func (p *Policy) IsReadable(post *models.Post, viewer Viewer) bool {
	if post == nil {
		return false
	}
	if viewer.Is(post.AuthorID) {
		return true
	}
	return p.IsPublic(post)
}

// IsEditable 访问者能否修改或删除作者为 authorID 的内容
func (p *Policy) IsEditable(authorID uint, viewer Viewer) bool {
	return authorID != 0 && viewer.Is(authorID)
}

// IsCategoryBrowsable 分类页是否可访问
func (p *Policy) IsCategoryBrowsable(category *models.Category) bool {
	return category != nil && category.IsPublished
}

// PublicFilter 公开可读条件对应的查询过滤
func (p *Policy) PublicFilter() repository.VisibilityFilter {
	return repository.VisibilityFilter{PublicOnly: true, Now: p.Now()}
}

// ProfileFilter 个人主页的查询过滤，主页本人看到全部文章
func (p *Policy) ProfileFilter(ownerID uint, viewer Viewer) repository.VisibilityFilter {
	if viewer.Is(ownerID) {
		return repository.VisibilityFilter{}
	}
	return p.PublicFilter()
}

// categoryAllowsPost 分类 ID 存在但未加载时按不可见处理
func categoryAllowsPost(post *models.Post) bool {
	if post.CategoryID == nil {
		return post.Category == nil || post.Category.IsPublished
	}
	return post.Category != nil && post.Category.IsPublished
}
