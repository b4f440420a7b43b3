package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 资源不存在或对当前访问者不可见
	ErrNotFound = errors.New("not found")
	// ErrPageNotFound 页码超出范围
	ErrPageNotFound = fmt.Errorf("page out of range: %w", ErrNotFound)
	// ErrForbidden 无权操作
	ErrForbidden = errors.New("forbidden")
	// ErrRedirectToDetail 非作者修改文章时回到详情页
	ErrRedirectToDetail = errors.New("redirect to post detail")
	// ErrUnauthenticated 需要登录
	ErrUnauthenticated = errors.New("authentication required")
	// ErrValidation 输入校验失败
	ErrValidation = errors.New("validation failed")
)

var (
	ErrTitleRequired       = validationError("title is required")
	ErrTitleTooLong        = validationError("title is too long")
	ErrTextRequired        = validationError("text is required")
	ErrInvalidPubDate      = validationError("invalid pub_date")
	ErrInvalidSlug         = validationError("invalid slug")
	ErrSlugExists          = validationError("slug already exists")
	ErrCategoryInvalid     = validationError("category does not exist")
	ErrLocationInvalid     = validationError("location does not exist")
	ErrNameRequired        = validationError("name is required")
	ErrCommentTextRequired = validationError("comment text is required")
	ErrUsernameInvalid     = validationError("invalid username")
	ErrUsernameExists      = validationError("username already exists")
	ErrEmailInvalid        = validationError("invalid email")
	ErrWeakPassword        = validationError("password does not satisfy policy")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidFileType    = validationError("invalid file type")
	ErrFileTooLarge       = validationError("file too large")
	ErrImageTooLarge      = validationError("image dimensions too large")
)

// validationErr 校验错误，errors.Is 同时匹配自身与 ErrValidation
type validationErr struct {
	msg string
}

func validationError(msg string) error {
	return &validationErr{msg: msg}
}

func (e *validationErr) Error() string {
	return e.msg
}

func (e *validationErr) Is(target error) bool {
	return target == ErrValidation
}

// RedirectError 携带需要跳转的文章 ID
type RedirectError struct {
	PostID uint
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to post %d", e.PostID)
}

func (e *RedirectError) Is(target error) bool {
	return target == ErrRedirectToDetail
}
