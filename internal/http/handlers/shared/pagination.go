package shared

import (
	"strconv"
	"strings"

	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ParsePage 读取 page 查询参数，缺省为 1，"last" 表示最后一页。
// 非数字或小于 1 的页码与越界页码一样按不存在处理，越界判断交给 service 层。
func ParsePage(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("page"))
	if raw == "" {
		return 1, true
	}
	if raw == "last" {
		return service.LastPage, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		RespondError(c, response.CodeNotFound, "error.page_invalid", nil)
		return 0, false
	}
	return page, true
}

// ParseUintParam 读取路径中的正整数 ID。
func ParseUintParam(c *gin.Context, name, invalidKey string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return uint(value), true
}
