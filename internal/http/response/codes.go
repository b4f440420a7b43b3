package response

// 业务状态码，HTTP 状态统一为 200，SeeOther 除外
const (
	CodeOK              = 0
	CodeSeeOther        = 303
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeTooManyRequests = 429
	CodeInternal        = 500
)
