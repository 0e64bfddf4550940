package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"schedule-arranger/backend/config"
	"schedule-arranger/backend/internal/dto"
	"schedule-arranger/backend/pkg/jwt"
)

// fakeBlacklist 记录写入黑名单的 jti
type fakeBlacklist struct {
	entries map[string]time.Duration
	err     error
}

func (f *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.entries[jti] = ttl
	return nil
}

const (
	testProviderSecret = "provider-secret-0123456789"
	testProviderIssuer = "identity-provider"
)

func setupTestAuthService() (*authService, *mockStore, *jwt.Manager) {
	store := newMockStore()
	cfg := &config.Config{Auth: config.AuthConfig{
		JWTSecret:      "test-secret-0123456789",
		AccessTokenTTL: time.Hour,
		ProviderSecret: testProviderSecret,
		ProviderIssuer: testProviderIssuer,
	}}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, store.toRepository(), jwtMgr, nil, zap.NewNop()).(*authService)
	return svc, store, jwtMgr
}

// providerAssertion 以给定密钥模拟身份提供方签发身份断言
func providerAssertion(t *testing.T, secret, userID, username string) *dto.LoginRequest {
	t.Helper()
	now := time.Now()
	claims := jwt.IdentityClaims{
		Username: username,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   userID,
			Issuer:    testProviderIssuer,
			Audience:  jwtv5.ClaimStrings{"schedule-arranger"},
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(time.Minute)),
		},
	}
	s, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("签发身份断言失败: %v", err)
	}
	return &dto.LoginRequest{Assertion: s}
}

func TestLogin_RegistersUserAndIssuesToken(t *testing.T) {
	svc, store, jwtMgr := setupTestAuthService()
	ctx := context.Background()

	resp, err := svc.Login(ctx, providerAssertion(t, testProviderSecret, " 12345 ", "alice"))
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}
	if resp.User.UserID != "12345" || resp.ExpiresIn != 3600 {
		t.Errorf("响应不正确: %+v", resp)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("签发的 Token 无法解析: %v", err)
	}
	if claims.UserID != "12345" || claims.Username != "alice" {
		t.Errorf("Token 声明不正确: %+v", claims)
	}

	// 再次登录，显示名以最新为准
	if _, err := svc.Login(ctx, providerAssertion(t, testProviderSecret, "12345", "alice2")); err != nil {
		t.Fatalf("再次 Login 失败: %v", err)
	}
	if store.users["12345"].Username != "alice2" || len(store.users) != 1 {
		t.Errorf("用户未按最新显示名更新: %+v", store.users)
	}
}

func TestLogin_ForgedIdentityRejected(t *testing.T) {
	svc, store, jwtMgr := setupTestAuthService()
	store.seedUser("100", "owner")
	ctx := context.Background()

	// 以自选密钥签名，冒充所有者 100
	_, err := svc.Login(ctx, providerAssertion(t, "attacker-secret-0123456789", "100", "pwned"))
	if !errors.Is(err, ErrIdentityUnverified) {
		t.Fatalf("期望 ErrIdentityUnverified，实际=%v", err)
	}

	// 本服务签发的 Access Token 不能充当身份断言
	accessToken, err := jwtMgr.GenerateAccessToken("100", "pwned")
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Assertion: accessToken}); !errors.Is(err, ErrIdentityUnverified) {
		t.Fatalf("期望 ErrIdentityUnverified，实际=%v", err)
	}

	if store.users["100"].Username != "owner" {
		t.Errorf("伪造登录不应改写用户: %+v", store.users["100"])
	}
}

func TestLogin_InvalidIdentity(t *testing.T) {
	svc, store, _ := setupTestAuthService()

	tests := []struct {
		name     string
		userID   string
		username string
	}{
		{"空用户名", "1", "  "},
		{"用户标识过长", strings.Repeat("9", 65), "x"},
		{"显示名过长", "1", strings.Repeat("名", 256)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), providerAssertion(t, testProviderSecret, tt.userID, tt.username))
			if !errors.Is(err, ErrInvalidIdentity) {
				t.Errorf("期望 ErrInvalidIdentity，实际=%v", err)
			}
		})
	}
	if len(store.users) != 0 {
		t.Errorf("无效身份不应登记用户: %+v", store.users)
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	svc, store, _ := setupTestAuthService()
	store.fail["user.upsert"] = errors.New("db down")
	if _, err := svc.Login(context.Background(), providerAssertion(t, testProviderSecret, "1", "x")); err == nil {
		t.Fatal("存储失败时应返回错误")
	}
}

func TestLogout(t *testing.T) {
	svc, _, _ := setupTestAuthService()
	ctx := context.Background()

	// Redis 不可用时降级为 no-op
	if err := svc.Logout(ctx, "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("无黑名单时不应报错: %v", err)
	}

	bl := &fakeBlacklist{entries: make(map[string]time.Duration)}
	svc.blacklist = bl
	if err := svc.Logout(ctx, "jti-2", time.Now().Add(30*time.Minute)); err != nil {
		t.Fatalf("Logout 失败: %v", err)
	}
	ttl, ok := bl.entries["jti-2"]
	if !ok || ttl <= 0 || ttl > 30*time.Minute {
		t.Errorf("黑名单 TTL 应为 Token 剩余有效期，实际=%v", ttl)
	}

	bl.err = errors.New("redis down")
	if err := svc.Logout(ctx, "jti-3", time.Now().Add(time.Minute)); err == nil {
		t.Error("黑名单写入失败时应返回错误")
	}
}

func TestGetCurrentUser(t *testing.T) {
	svc, store, _ := setupTestAuthService()
	store.seedUser("7", "seven")

	u, err := svc.GetCurrentUser(context.Background(), "7")
	if err != nil || u.Username != "seven" {
		t.Fatalf("GetCurrentUser 结果不正确: %+v, %v", u, err)
	}
	if _, err := svc.GetCurrentUser(context.Background(), "8"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际=%v", err)
	}
}
