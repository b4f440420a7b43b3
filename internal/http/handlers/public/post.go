package public

import (
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PostRequest 创建/更新文章请求
// 更新时 pub_date、is_published 缺省表示保持原值
type PostRequest struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	PubDate     string `json:"pub_date"`
	Image       string `json:"image"`
	IsPublished *bool  `json:"is_published"`
	CategoryID  *uint  `json:"category_id"`
	LocationID  *uint  `json:"location_id"`
}

func (r PostRequest) toInput() service.PostInput {
	return service.PostInput{
		Title:       r.Title,
		Text:        r.Text,
		RawPubDate:  r.PubDate,
		Image:       r.Image,
		IsPublished: r.IsPublished,
		CategoryID:  r.CategoryID,
		LocationID:  r.LocationID,
	}
}

// CreatePost 发布文章
func (h *Handler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.PostService.Create(c.Request.Context(), req.toInput(), getViewer(c))
	if err != nil {
		respondPostMutationError(c, err, "error.post_create_failed")
		return
	}
	response.Success(c, post)
}

// UpdatePost 修改文章，非作者跳转回详情
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.PostService.Update(c.Request.Context(), id, req.toInput(), getViewer(c))
	if err != nil {
		respondPostMutationError(c, err, "error.post_update_failed")
		return
	}
	response.Success(c, post)
}

// DeletePost 删除文章及其评论，非作者跳转回详情
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parsePostID(c)
	if !ok {
		return
	}
	if err := h.PostService.Delete(c.Request.Context(), id, getViewer(c)); err != nil {
		respondPostMutationError(c, err, "error.post_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true, "id": id})
}
