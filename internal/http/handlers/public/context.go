package public

import (
	handlershared "github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/policy"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

func getViewer(c *gin.Context) policy.Viewer {
	return handlershared.GetViewer(c)
}

func parsePage(c *gin.Context) (int, bool) {
	return handlershared.ParsePage(c)
}

func parsePostID(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "id", "error.post_id_invalid")
}

func parseCommentID(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "comment_id", "error.comment_id_invalid")
}
