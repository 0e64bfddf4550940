package service

import (
	"context"

	"go.uber.org/zap"

	"schedule-arranger/backend/config"
	"schedule-arranger/backend/internal/repository"
	"schedule-arranger/backend/pkg/jwt"
	applog "schedule-arranger/backend/pkg/logger"
	"schedule-arranger/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Schedule   ScheduleService
	Attendance AttendanceService
	Export     ExportService
}

// NewService 创建 Service 聚合
// rdb 可为 nil（Redis 不可用时登出不写黑名单）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	schedule := NewScheduleService(repo, cfg.App.Location(), logger)
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Schedule:   schedule,
		Attendance: NewAttendanceService(repo, logger),
		Export:     NewExportService(schedule, logger),
	}
}

// ctxLogger 优先使用请求级日志器（携带 request_id）
func ctxLogger(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	return applog.FromContext(ctx, fallback)
}
