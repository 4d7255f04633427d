package middleware

import (
	"expenses/logging"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// HeaderRequestID 请求 ID 的 HTTP 头
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID 为每个请求分配 ID，优先沿用上游传入的 X-Request-ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = ulid.Make().String()
		}
		c.Set(logging.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
