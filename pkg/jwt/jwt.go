package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"schedule-arranger/backend/config"
)

var (
	ErrTokenExpired = errors.New("token 已过期")
	ErrTokenInvalid = errors.New("token 无效")
)

const issuer = "schedule-arranger"

// maxAssertionTTL 身份断言允许的最长剩余有效期
const maxAssertionTTL = 10 * time.Minute

// Claims 自定义 JWT 声明
// 身份由外部身份提供方解析后，以 user_id + username 的形式携带
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"` // 当前仅 "access"
	jwtv5.RegisteredClaims
}

// IdentityClaims 身份提供方签发的身份断言
// sub 为用户标识，aud 必须为本服务
type IdentityClaims struct {
	Username string `json:"name"`
	jwtv5.RegisteredClaims
}

// Manager JWT 管理器
type Manager struct {
	secret         []byte
	accessTokenTTL time.Duration
	providerSecret []byte
	providerIssuer string
}

// NewManager 创建 JWT 管理器
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:         []byte(cfg.JWTSecret),
		accessTokenTTL: cfg.AccessTokenTTL,
		providerSecret: []byte(cfg.ProviderSecret),
		providerIssuer: cfg.ProviderIssuer,
	}
}

// AccessTokenTTL 返回 Access Token 有效期
func (m *Manager) AccessTokenTTL() time.Duration {
	return m.accessTokenTTL
}

// GenerateAccessToken 生成 Access Token
func (m *Manager) GenerateAccessToken(userID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Username:  username,
		TokenType: "access",
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.accessTokenTTL)),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 解析并验证 Token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// VerifyIdentityAssertion 校验身份提供方签发的身份断言
// 要求 HS256 + provider_secret 签名、iss 为身份提供方、aud 为本服务，且 exp 存在并在 maxAssertionTTL 之内
func (m *Manager) VerifyIdentityAssertion(assertion string) (*IdentityClaims, error) {
	if len(m.providerSecret) == 0 || m.providerIssuer == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwtv5.ParseWithClaims(assertion, &IdentityClaims{}, func(t *jwtv5.Token) (interface{}, error) {
		return m.providerSecret, nil
	},
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithIssuer(m.providerIssuer),
		jwtv5.WithAudience(issuer),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	if time.Until(claims.ExpiresAt.Time) > maxAssertionTTL {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
