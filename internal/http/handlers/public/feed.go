package public

import (
	"strings"

	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// profileView 公开主页展示的用户信息
type profileView struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
	DateJoined  string `json:"date_joined"`
	IsOwner     bool   `json:"is_owner"`
}

func newProfileView(user *models.User, isOwner bool) profileView {
	return profileView{
		ID:          user.ID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DisplayName: user.DisplayName(),
		DateJoined:  user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		IsOwner:     isOwner,
	}
}

func pagination(page service.PostPage) response.Pagination {
	return response.NewPagination(page.Page, page.PageSize, page.Total, page.TotalPages)
}

// GetPosts 首页文章列表
func (h *Handler) GetPosts(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	result, err := h.FeedService.ListHome(c.Request.Context(), page)
	if err != nil {
		respondWithMappedError(c, err, feedErrorRules, response.CodeInternal, "error.feed_fetch_failed")
		return
	}
	response.SuccessWithPage(c, result.Items, pagination(result))
}

// GetPost 文章详情
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	detail, err := h.FeedService.GetPostDetail(c.Request.Context(), id, getViewer(c))
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.post_not_found"},
		}, response.CodeInternal, "error.post_fetch_failed")
		return
	}
	response.Success(c, detail)
}

// GetCategoryPosts 分类文章列表
func (h *Handler) GetCategoryPosts(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	slug := strings.TrimSpace(c.Param("slug"))
	category, result, err := h.FeedService.ListCategory(c.Request.Context(), slug, page)
	if err != nil {
		respondWithMappedError(c, err, concatMappedHandlerErrors(feedErrorRules, []mappedHandlerError{
			{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
		}), response.CodeInternal, "error.feed_fetch_failed")
		return
	}
	response.SuccessWithPage(c, gin.H{
		"category": category,
		"items":    result.Items,
	}, pagination(result))
}

// GetProfilePosts 个人主页文章列表
func (h *Handler) GetProfilePosts(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}
	viewer := getViewer(c)
	username := strings.TrimSpace(c.Param("username"))
	user, result, err := h.FeedService.ListProfile(c.Request.Context(), username, viewer, page)
	if err != nil {
		respondWithMappedError(c, err, concatMappedHandlerErrors(feedErrorRules, []mappedHandlerError{
			{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
		}), response.CodeInternal, "error.feed_fetch_failed")
		return
	}
	response.SuccessWithPage(c, gin.H{
		"profile": newProfileView(user, viewer.Is(user.ID)),
		"items":   result.Items,
	}, pagination(result))
}

// GetCategories 已发布分类
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListPublished(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetLocations 已发布地点
func (h *Handler) GetLocations(c *gin.Context) {
	locations, err := h.LocationService.ListPublished(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.location_fetch_failed", err)
		return
	}
	response.Success(c, locations)
}
