package shared

import (
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/i18n"
	"github.com/blogicum-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// localizedError 携带文案 key 与参数的业务错误，例如密码策略错误。
type localizedError interface {
	Key() string
	Args() []interface{}
}

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil || c.Request == nil {
		return logger.S()
	}
	return logger.Request(c.GetString("request_id"), "method", c.Request.Method, "path", c.FullPath())
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", code,
			"message", msg,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

// RespondLocalizedError 错误自带文案 key 时按其参数格式化，否则使用 fallbackKey。
func RespondLocalizedError(c *gin.Context, code int, err error, fallbackKey string) {
	if lerr, ok := err.(localizedError); ok {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), lerr.Key(), lerr.Args()...)
		RespondErrorWithMsg(c, code, msg, nil)
		return
	}
	RespondError(c, code, fallbackKey, nil)
}
