package handler

import (
	"strconv"

	"cm-go/internal/api/response"
	"cm-go/internal/service"
	"cm-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func parseIDParam(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// handleServiceError 按错误分类写响应，非预期错误只记日志，不把原因返回给调用方
func handleServiceError(c *gin.Context, op string, err error) {
	switch service.KindOf(err) {
	case service.KindNotFound:
		response.NotFound(c, err.Error())
	case service.KindMalformedIdentity, service.KindValidation:
		response.BadRequest(c, err.Error())
	case service.KindUnauthorized:
		response.Unauthorized(c, err.Error())
	case service.KindForbidden:
		response.Forbidden(c, err.Error())
	case service.KindConflict:
		response.Conflict(c, err.Error())
	default:
		logger.Error(op+" failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
