package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const KeyRequestID = "X-Request-ID"

// RequestID 透传入站的 X-Request-ID，没有就补一个；
// 回写响应头并存进 gin 上下文供访问日志取用
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(KeyRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		c.Next()
	}
}

// RequestIDFrom 读取当前请求的 request id
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(KeyRequestID)
}
