package public

import "github.com/blogicum-next/internal/provider"

// Handler 博客接口处理器入口
// 说明：读接口允许匿名访问，写接口由路由层挂载鉴权中间件。
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
