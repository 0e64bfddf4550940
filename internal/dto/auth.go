package dto

// ── 认证模块 DTO ──

// LoginRequest 身份交接请求
// assertion 为外部身份提供方（OAuth 回调）签发的身份断言，用户标识与显示名只从断言中读取
type LoginRequest struct {
	Assertion string `json:"assertion" binding:"required,max=4096"`
}
