package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"schedule-arranger/backend/pkg/jwt"
	"schedule-arranger/backend/pkg/redis"
	"schedule-arranger/backend/pkg/response"
)

// AccessTokenCookie 浏览器会话使用的 Cookie 名
const AccessTokenCookie = "access_token"

// JWTAuth JWT 认证中间件
// 优先读取 Authorization: Bearer <token>，其次读取 access_token Cookie
// rdb 为 nil 时跳过黑名单检查
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			response.Unauthorized(c, 10002, "缺少认证信息")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(tokenString)
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != "access" || claims.UserID == "" {
			response.Unauthorized(c, 10002, "Token 类型无效")
			c.Abort()
			return
		}

		if rdb != nil && claims.ID != "" {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "Token 已失效")
				c.Abort()
				return
			}
			// Redis 出错时降级放行
		}

		// 将用户信息注入上下文
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_exp", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}
