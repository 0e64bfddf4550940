package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "schedule-arranger/backend/pkg/logger"
)

const requestIDKey = "request_id"

// requestIDMaxLen 外部传入的 Request-ID 最大长度
const requestIDMaxLen = 64

// RequestID 请求追踪 ID 中间件
// 沿用合法的 X-Request-ID，否则生成 UUID；同时把携带 request_id 的日志器放入请求 ctx，
// 业务层经 logger.FromContext 取用
func RequestID(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if !validRequestID(rid) {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		reqLogger := logger.With(zap.String(requestIDKey, rid))
		c.Request = c.Request.WithContext(applog.WithContext(c.Request.Context(), reqLogger))

		c.Next()
	}
}

// validRequestID 仅接受字母、数字与 -_.，避免换行等字符进入日志
func validRequestID(rid string) bool {
	if rid == "" || len(rid) > requestIDMaxLen {
		return false
	}
	for _, r := range rid {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}
