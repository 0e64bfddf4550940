package dto

// ── 认证模块响应 ──

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"` // Access Token 有效期（秒）
	User        UserResponse `json:"user"`
}

// UserResponse 用户信息
type UserResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Identity 已认证的调用方身份（来自 JWT）
type Identity struct {
	UserID   string
	Username string
}
