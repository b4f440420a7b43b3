package public

import (
	"github.com/blogicum-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CommentRequest 评论请求
type CommentRequest struct {
	Text string `json:"text"`
}

// CreateComment 发表评论
func (h *Handler) CreateComment(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	comment, err := h.CommentService.Create(c.Request.Context(), postID, req.Text, getViewer(c))
	if err != nil {
		respondCommentError(c, err, "error.post_not_found", "error.comment_create_failed")
		return
	}
	response.Success(c, comment)
}

// UpdateComment 修改评论，仅作者本人
func (h *Handler) UpdateComment(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	comment, err := h.CommentService.Update(c.Request.Context(), postID, commentID, req.Text, getViewer(c))
	if err != nil {
		respondCommentError(c, err, "error.comment_not_found", "error.comment_update_failed")
		return
	}
	response.Success(c, comment)
}

// DeleteComment 删除评论，仅作者本人
func (h *Handler) DeleteComment(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}
	if err := h.CommentService.Delete(c.Request.Context(), postID, commentID, getViewer(c)); err != nil {
		respondCommentError(c, err, "error.comment_not_found", "error.comment_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true, "id": commentID})
}
