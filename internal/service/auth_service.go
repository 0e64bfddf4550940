package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"schedule-arranger/backend/config"
	"schedule-arranger/backend/internal/dto"
	"schedule-arranger/backend/internal/model"
	"schedule-arranger/backend/internal/repository"
	"schedule-arranger/backend/pkg/jwt"
	"schedule-arranger/backend/pkg/redis"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrInvalidIdentity    = errors.New("身份信息无效")
	ErrIdentityUnverified = errors.New("身份断言校验失败")
)

const (
	maxUserIDLength   = 64
	maxUsernameLength = 255
)

// AuthService 认证业务接口
// 实际的身份认证由外部身份提供方完成，这里校验其签发的身份断言，再登记用户并签发会话 Token
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

// tokenBlacklist Token 黑名单的最小依赖
type tokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist tokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	s := &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		logger: logger,
	}
	if rdb != nil {
		s.blacklist = rdb
	}
	return s
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 校验身份断言：签名、签发方、受众、有效期
	identity, err := s.jwtMgr.VerifyIdentityAssertion(req.Assertion)
	if err != nil {
		ctxLogger(ctx, s.logger).Warn("身份断言校验失败", zap.Error(err))
		return nil, ErrIdentityUnverified
	}

	userID := strings.TrimSpace(identity.Subject)
	username := strings.TrimSpace(identity.Username)
	if userID == "" || username == "" ||
		len(userID) > maxUserIDLength || utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, ErrInvalidIdentity
	}

	// 2. 登记用户（显示名以最近一次登录为准）
	user := &model.User{UserID: userID, Username: username}
	if err := s.repo.User.Upsert(ctx, user); err != nil {
		ctxLogger(ctx, s.logger).Error("登记用户失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// 3. 签发 Access Token
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Username)
	if err != nil {
		ctxLogger(ctx, s.logger).Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User: dto.UserResponse{
			UserID:   user.UserID,
			Username: user.Username,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	if s.blacklist == nil {
		ctxLogger(ctx, s.logger).Warn("Redis 不可用，跳过 Token 黑名单", zap.String("jti", jti))
		return nil
	}

	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		ctxLogger(ctx, s.logger).Error("写入 Token 黑名单失败", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		ctxLogger(ctx, s.logger).Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.UserResponse{UserID: user.UserID, Username: user.Username}, nil
}
