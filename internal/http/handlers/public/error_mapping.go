package public

import (
	"errors"
	"fmt"

	handlershared "github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/i18n"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	var redirect *service.RedirectError
	if errors.As(err, &redirect) {
		respondRedirectToPost(c, redirect.PostID)
		return
	}
	if errors.Is(err, service.ErrWeakPassword) {
		handlershared.RespondLocalizedError(c, response.CodeBadRequest, err, "error.password_weak")
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// respondRedirectToPost 非作者修改文章时跳转回详情
func respondRedirectToPost(c *gin.Context, postID uint) {
	location := fmt.Sprintf("/api/v1/posts/%d", postID)
	msg := i18n.T(i18n.ResolveLocale(c), "error.post_redirect")
	response.SeeOther(c, location, msg, gin.H{"post_id": postID, "location": location})
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthenticated, code: response.CodeUnauthorized, key: "error.unauthorized"},
}

var feedErrorRules = []mappedHandlerError{
	{target: service.ErrPageNotFound, code: response.CodeNotFound, key: "error.page_not_found"},
}

var postValidationErrorRules = []mappedHandlerError{
	{target: service.ErrTitleRequired, code: response.CodeBadRequest, key: "error.title_required"},
	{target: service.ErrTitleTooLong, code: response.CodeBadRequest, key: "error.title_too_long"},
	{target: service.ErrTextRequired, code: response.CodeBadRequest, key: "error.text_required"},
	{target: service.ErrInvalidPubDate, code: response.CodeBadRequest, key: "error.pub_date_invalid"},
	{target: service.ErrCategoryInvalid, code: response.CodeBadRequest, key: "error.category_invalid"},
	{target: service.ErrLocationInvalid, code: response.CodeBadRequest, key: "error.location_invalid"},
}

var postMutationErrorRules = concatMappedHandlerErrors(
	authErrorRules,
	postValidationErrorRules,
	[]mappedHandlerError{
		{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.post_not_found"},
	},
)

var commentErrorRules = concatMappedHandlerErrors(
	authErrorRules,
	[]mappedHandlerError{
		{target: service.ErrCommentTextRequired, code: response.CodeBadRequest, key: "error.comment_text_required"},
		{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.comment_forbidden"},
	},
)

var userProfileErrorRules = []mappedHandlerError{
	{target: service.ErrUsernameInvalid, code: response.CodeBadRequest, key: "error.username_invalid"},
	{target: service.ErrUsernameExists, code: response.CodeBadRequest, key: "error.username_exists"},
	{target: service.ErrEmailInvalid, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var uploadErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidFileType, code: response.CodeBadRequest, key: "error.file_type_invalid"},
	{target: service.ErrFileTooLarge, code: response.CodeBadRequest, key: "error.file_too_large"},
	{target: service.ErrImageTooLarge, code: response.CodeBadRequest, key: "error.image_too_large"},
	{target: service.ErrStorageUnavailable, code: response.CodeInternal, key: "error.storage_unavailable"},
}

func respondPostMutationError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, postMutationErrorRules, response.CodeInternal, fallbackKey)
}

// respondCommentError 评论不存在与文章不存在统一为 404，文案按评论 ID 是否参与区分
func respondCommentError(c *gin.Context, err error, notFoundKey, fallbackKey string) {
	rules := concatMappedHandlerErrors(commentErrorRules, []mappedHandlerError{
		{target: service.ErrNotFound, code: response.CodeNotFound, key: notFoundKey},
	})
	respondWithMappedError(c, err, rules, response.CodeInternal, fallbackKey)
}
