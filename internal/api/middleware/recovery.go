package middleware

import (
	"net/http"

	"cm-go/internal/api/response"
	"cm-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery 恢复中间件，捕获panic
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("request_id", c.GetString(ContextKeyRequestID)),
				)

				response.Abort(c, http.StatusInternalServerError, "服务器内部错误")
			}
		}()

		c.Next()
	}
}
