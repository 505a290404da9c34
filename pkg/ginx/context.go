package ginx

import (
	"github.com/gin-gonic/gin"
	"github.com/opendatagh/catalog/pkg/idgen"
)

// requestIDKey 用于在 gin.Context 中存储请求 ID
const requestIDKey = "ginx-request-id"

// RequestID 中间件，为每个请求生成递增的请求 ID
// ID 会写入 X-Request-ID 响应头，并附加在错误响应的 requestID 字段中
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := idgen.GenerateRequestID()
		if err == nil {
			ctx.Set(requestIDKey, id)
			ctx.Header("X-Request-ID", id)
		}
		ctx.Next()
	}
}

// GetRequestID 获取当前请求的请求 ID，不存在时返回空字符串
func GetRequestID(ctx *gin.Context) string {
	id, exists := ctx.Get(requestIDKey)
	if !exists {
		return ""
	}
	if str, ok := id.(string); ok {
		return str
	}
	return ""
}
