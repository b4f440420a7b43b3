package repository

import "time"

// VisibilityFilter 文章可见性过滤条件，PublicOnly 为 false 时不做可见性限制
type VisibilityFilter struct {
	PublicOnly bool
	Now        time.Time
}

// PostListFilter 查询文章列表的过滤条件
type PostListFilter struct {
	Page       int
	PageSize   int
	AuthorID   uint
	CategoryID uint
	Visibility VisibilityFilter
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	OnlyPublished bool
}

// LocationListFilter 查询地点列表的过滤条件
type LocationListFilter struct {
	OnlyPublished bool
}
