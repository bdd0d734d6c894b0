package utils

import (
	"github.com/gin-gonic/gin"
)

// 订座等 JSON 接口统一的响应形状：
// {"status": "success"|"error", "message": "...", ...}

// OK 返回成功响应，extra 会合并进顶层
func OK(c *gin.Context, message string, extra gin.H) {
	res := gin.H{
		"status":  "success",
		"message": message,
	}
	for k, v := range extra {
		res[k] = v
	}
	c.JSON(200, res)
}

// Fail 返回错误响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  "error",
		"message": message,
	})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, message string) {
	Fail(c, 400, message)
}

// Unauthorized 返回401错误
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "未登录"
	}
	Fail(c, 401, message)
}

// NotFound 返回404错误
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "资源不存在"
	}
	Fail(c, 404, message)
}

// InternalServerError 返回500错误
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "服务器内部错误"
	}
	Fail(c, 500, message)
}
