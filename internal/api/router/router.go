package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schedule-arranger/backend/config"
	"schedule-arranger/backend/internal/api/handler"
	"schedule-arranger/backend/internal/api/middleware"
	"schedule-arranger/backend/pkg/jwt"
	"schedule-arranger/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb、db 可为 nil（测试或降级运行）
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	db *gorm.DB,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	handler.RegisterValidatorTagNames()

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if cfg.Server.MaxBodyBytes > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	}

	// ── 健康检查 ──
	r.GET("/health", healthCheck(db))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, cfg.Auth.LoginRateLimit, time.Minute), h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 予定模块
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("", h.Schedule.List)
				schedules.POST("", h.Schedule.Create)
				schedules.GET("/:id", h.Schedule.Get)
				schedules.GET("/:id/edit", h.Schedule.Edit)
				schedules.PUT("/:id", h.Schedule.Update)
				schedules.POST("/:id/update", h.Schedule.Update) // 表单提交
				schedules.DELETE("/:id", h.Schedule.Delete)
				schedules.POST("/:id/delete", h.Schedule.Delete) // 表单提交
				schedules.GET("/:id/export", h.Schedule.Export)

				// 出欠 / 评论 WebAPI
				schedules.POST("/:id/users/:user_id/candidates/:candidate_id", h.Attendance.SetAvailability)
				schedules.POST("/:id/users/:user_id/comments", h.Attendance.SetComment)
			}
		}
	}

	return r
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
				err = sqlDB.PingContext(ctx)
				cancel()
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
