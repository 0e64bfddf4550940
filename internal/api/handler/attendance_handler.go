package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"schedule-arranger/backend/internal/dto"
	"schedule-arranger/backend/internal/service"
	"schedule-arranger/backend/pkg/response"
)

// AttendanceHandler 出欠 / 评论 WebAPI 处理器
// 响应使用 {status: "OK" | "NG"} 结构，供前端按钮逐格更新
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// SetAvailability 更新自己对某候选的出欠
// POST /api/v1/schedules/:id/users/:user_id/candidates/:candidate_id
func (h *AttendanceHandler) SetAvailability(c *gin.Context) {
	var uri dto.AvailabilityURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.APIError(c, http.StatusBadRequest, 13001, "参数校验失败", validationReasons(err)...)
		return
	}
	var req dto.AvailabilityRequest
	if !bindAPIBody(c, &req) {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.SetAvailability(
		c.Request.Context(), callerID, uri.ScheduleID, uri.UserID, uri.CandidateID, *req.Availability,
	)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.APIAvailability(c, result.ScheduleID, result.CandidateID, result.UserID, int(result.Availability))
}

// SetComment 更新自己在予定下的评论
// POST /api/v1/schedules/:id/users/:user_id/comments
func (h *AttendanceHandler) SetComment(c *gin.Context) {
	var uri dto.CommentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.APIError(c, http.StatusBadRequest, 13001, "参数校验失败", validationReasons(err)...)
		return
	}
	var req dto.CommentRequest
	if !bindAPIBody(c, &req) {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.SetComment(c.Request.Context(), callerID, uri.ScheduleID, uri.UserID, *req.Comment)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.APIComment(c, result.ScheduleID, result.UserID, result.Comment)
}

func bindAPIBody(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if isBodyTooLarge(err) {
			response.APIError(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大", "body:too_large")
			return false
		}
		response.APIError(c, http.StatusBadRequest, 13001, "参数校验失败", validationReasons(err)...)
		return false
	}
	return true
}

// handleAttendanceError 统一处理出欠模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAvailability):
		response.APIError(c, http.StatusBadRequest, 13002, "出欠取值无效", "availability:oneof")
	case errors.Is(err, service.ErrForbiddenUser):
		response.APIError(c, http.StatusForbidden, 13003, "只能修改自己的出欠与评论")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.APIError(c, http.StatusNotFound, 13101, "予定不存在")
	case errors.Is(err, service.ErrCandidateNotFound):
		response.APIError(c, http.StatusNotFound, 13102, "候选日程不存在")
	default:
		response.APIError(c, http.StatusInternalServerError, 50000, "服务器内部错误")
	}
}
