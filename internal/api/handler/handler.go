package handler

import (
	"schedule-arranger/backend/config"
	"schedule-arranger/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Schedule   *ScheduleHandler
	Attendance *AttendanceHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, &cfg.Auth),
		Schedule:   NewScheduleHandler(svc.Schedule, svc.Export),
		Attendance: NewAttendanceHandler(svc.Attendance),
	}
}
