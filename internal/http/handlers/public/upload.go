package public

import (
	"strings"

	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadImage 上传文章配图
func (h *Handler) UploadImage(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.file_missing", nil)
		return
	}
	scene := strings.TrimSpace(c.PostForm("scene"))
	if scene == "" {
		scene = constants.UploadScenePost
	}
	url, err := h.UploadService.SaveFile(c.Request.Context(), file, scene, userID)
	if err != nil {
		respondWithMappedError(c, err, uploadErrorRules, response.CodeInternal, "error.upload_failed")
		return
	}
	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
