package i18n

var zhCN = map[string]string{
	"error.bad_request":            "请求参数错误",
	"error.unauthorized":           "未登录或登录已失效",
	"error.forbidden":              "无权操作",
	"error.not_found":              "资源不存在",
	"error.internal":               "服务器内部错误",
	"error.page_invalid":           "页码格式错误",
	"error.page_not_found":         "页码超出范围",
	"error.user_id_invalid":        "用户 ID 无效",
	"error.user_id_type_invalid":   "用户 ID 类型错误",
	"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
	"error.login_too_many":         "登录尝试次数过多，请 %d 秒后重试",
	"error.rate_limit_unavailable": "限流服务不可用",

	"error.auth_header_missing": "缺少 Authorization 头",
	"error.auth_header_invalid": "Authorization 头格式错误",
	"error.jwt_secret_missing":  "JWT 密钥未配置",
	"error.token_invalid":       "登录凭证无效",
	"error.token_expired":       "登录凭证已过期",
	"error.token_revoked":       "登录凭证已失效，请重新登录",
	"error.invalid_credentials": "用户名或密码错误",

	"error.post_id_invalid":       "文章 ID 无效",
	"error.post_not_found":        "文章不存在",
	"error.post_redirect":         "只有作者可以修改或删除文章",
	"error.comment_id_invalid":    "评论 ID 无效",
	"error.comment_not_found":     "评论不存在",
	"error.comment_forbidden":     "只有作者可以修改或删除评论",
	"error.category_not_found":    "分类不存在",
	"error.user_not_found":        "用户不存在",
	"error.title_required":        "标题不能为空",
	"error.title_too_long":        "标题过长",
	"error.text_required":         "正文不能为空",
	"error.pub_date_invalid":      "发布时间格式错误",
	"error.slug_invalid":          "标识只能包含字母、数字、连字符和下划线",
	"error.slug_exists":           "标识已存在",
	"error.category_invalid":      "分类不存在",
	"error.location_invalid":      "地点不存在",
	"error.name_required":         "名称不能为空",
	"error.comment_text_required": "评论内容不能为空",

	"error.username_invalid":         "用户名只能包含字母、数字和 @/./+/-/_，最长 150 个字符",
	"error.username_exists":          "用户名已被占用",
	"error.email_invalid":            "邮箱格式错误",
	"error.password_weak":            "密码强度不足",
	"error.password_min_length":      "密码长度至少为 %d 位",
	"error.password_require_upper":   "密码需包含大写字母",
	"error.password_require_lower":   "密码需包含小写字母",
	"error.password_require_number":  "密码需包含数字",
	"error.password_require_special": "密码需包含特殊字符",

	"error.file_missing":        "请选择要上传的文件",
	"error.file_type_invalid":   "不支持的文件类型",
	"error.file_too_large":      "文件过大",
	"error.image_too_large":     "图片尺寸过大",
	"error.storage_unavailable": "存储服务不可用",

	"error.feed_fetch_failed":     "获取文章列表失败",
	"error.post_fetch_failed":     "获取文章失败",
	"error.post_create_failed":    "创建文章失败",
	"error.post_update_failed":    "更新文章失败",
	"error.post_delete_failed":    "删除文章失败",
	"error.comment_create_failed": "发表评论失败",
	"error.comment_update_failed": "修改评论失败",
	"error.comment_delete_failed": "删除评论失败",
	"error.category_fetch_failed": "获取分类失败",
	"error.location_fetch_failed": "获取地点失败",
	"error.upload_failed":         "上传失败",
	"error.register_failed":       "注册失败",
	"error.login_failed":          "登录失败",
	"error.profile_fetch_failed":  "获取用户信息失败",
	"error.profile_update_failed": "更新用户信息失败",
}

var enUS = map[string]string{
	"error.bad_request":            "Invalid request parameters",
	"error.unauthorized":           "Not logged in or session expired",
	"error.forbidden":              "Permission denied",
	"error.not_found":              "Resource not found",
	"error.internal":               "Internal server error",
	"error.page_invalid":           "Invalid page number",
	"error.page_not_found":         "Page out of range",
	"error.user_id_invalid":        "Invalid user ID",
	"error.user_id_type_invalid":   "Invalid user ID type",
	"error.rate_limited":           "Too many requests, retry in %d seconds",
	"error.login_too_many":         "Too many login attempts, retry in %d seconds",
	"error.rate_limit_unavailable": "Rate limiter unavailable",

	"error.auth_header_missing": "Missing Authorization header",
	"error.auth_header_invalid": "Malformed Authorization header",
	"error.jwt_secret_missing":  "JWT secret is not configured",
	"error.token_invalid":       "Invalid token",
	"error.token_expired":       "Token expired",
	"error.token_revoked":       "Token revoked, please log in again",
	"error.invalid_credentials": "Invalid username or password",

	"error.post_id_invalid":       "Invalid post ID",
	"error.post_not_found":        "Post not found",
	"error.post_redirect":         "Only the author can edit or delete this post",
	"error.comment_id_invalid":    "Invalid comment ID",
	"error.comment_not_found":     "Comment not found",
	"error.comment_forbidden":     "Only the author can edit or delete this comment",
	"error.category_not_found":    "Category not found",
	"error.user_not_found":        "User not found",
	"error.title_required":        "Title is required",
	"error.title_too_long":        "Title is too long",
	"error.text_required":         "Text is required",
	"error.pub_date_invalid":      "Invalid publication date",
	"error.slug_invalid":          "Slug may only contain letters, digits, hyphens and underscores",
	"error.slug_exists":           "Slug already exists",
	"error.category_invalid":      "Category does not exist",
	"error.location_invalid":      "Location does not exist",
	"error.name_required":         "Name is required",
	"error.comment_text_required": "Comment text is required",

	"error.username_invalid":         "Username may contain letters, digits and @/./+/-/_ only, up to 150 characters",
	"error.username_exists":          "Username is already taken",
	"error.email_invalid":            "Invalid email address",
	"error.password_weak":            "Password is too weak",
	"error.password_min_length":      "Password must be at least %d characters",
	"error.password_require_upper":   "Password must contain an uppercase letter",
	"error.password_require_lower":   "Password must contain a lowercase letter",
	"error.password_require_number":  "Password must contain a digit",
	"error.password_require_special": "Password must contain a special character",

	"error.file_missing":        "No file uploaded",
	"error.file_type_invalid":   "Unsupported file type",
	"error.file_too_large":      "File is too large",
	"error.image_too_large":     "Image dimensions are too large",
	"error.storage_unavailable": "Storage is unavailable",

	"error.feed_fetch_failed":     "Failed to load posts",
	"error.post_fetch_failed":     "Failed to load post",
	"error.post_create_failed":    "Failed to create post",
	"error.post_update_failed":    "Failed to update post",
	"error.post_delete_failed":    "Failed to delete post",
	"error.comment_create_failed": "Failed to add comment",
	"error.comment_update_failed": "Failed to update comment",
	"error.comment_delete_failed": "Failed to delete comment",
	"error.category_fetch_failed": "Failed to load categories",
	"error.location_fetch_failed": "Failed to load locations",
	"error.upload_failed":         "Upload failed",
	"error.register_failed":       "Registration failed",
	"error.login_failed":          "Login failed",
	"error.profile_fetch_failed":  "Failed to load profile",
	"error.profile_update_failed": "Failed to update profile",
}
