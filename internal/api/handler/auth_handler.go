package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"schedule-arranger/backend/config"
	"schedule-arranger/backend/internal/api/middleware"
	"schedule-arranger/backend/internal/dto"
	"schedule-arranger/backend/internal/service"
	"schedule-arranger/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	authCfg *config.AuthConfig
}

// NewAuthHandler 创建 AuthHandler
// authCfg 为 nil 时使用默认 Cookie 配置
func NewAuthHandler(authSvc service.AuthService, authCfg *config.AuthConfig) *AuthHandler {
	if authCfg == nil {
		authCfg = &config.AuthConfig{Cookie: config.CookieConfig{SameSite: "Lax"}}
	}
	return &AuthHandler{authSvc: authSvc, authCfg: authCfg}
}

// Login 外部身份交接：校验身份断言后登记用户并签发会话
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", joinReasons(err))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIdentityUnverified):
			response.Unauthorized(c, 11003, "身份未经验证")
			return
		case errors.Is(err, service.ErrInvalidIdentity):
			response.BadRequest(c, 11001, "身份信息无效")
			return
		}
		response.InternalError(c)
		return
	}

	h.setTokenCookie(c, result.AccessToken, result.ExpiresIn)
	response.OK(c, result)
}

// Logout 登出：Token 加入黑名单并清除 Cookie
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("token_jti")
	exp := c.GetTime("token_exp")
	if exp.IsZero() {
		exp = time.Now()
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}

	h.setTokenCookie(c, "", -1)
	response.OK(c, nil)
}

// Me 当前登录用户
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11002, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(parseSameSite(h.authCfg.Cookie.SameSite))
	c.SetCookie(middleware.AccessTokenCookie, token, maxAge, "/", h.authCfg.Cookie.Domain, h.authCfg.Cookie.Secure, true)
}

func parseSameSite(v string) http.SameSite {
	switch v {
	case "Strict", "strict":
		return http.SameSiteStrictMode
	case "None", "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
