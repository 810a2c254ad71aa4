package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body 统一响应体，成功和失败共用，code 与 HTTP 状态码一致
type Body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Body{
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Body{
		Code:    statusCode,
		Message: message,
	})
}

// Abort 写入失败响应并终止后续中间件
func Abort(c *gin.Context, statusCode int, message string) {
	Fail(c, statusCode, message)
	c.Abort()
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}
