package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// APIResult 出欠/评论 WebAPI 的响应结构
// 成功时 status=OK 并附带写入后的值；失败时 status=NG 并附带原因列表
type APIResult struct {
	Status       string   `json:"status"`
	ScheduleID   string   `json:"schedule_id,omitempty"`
	CandidateID  int64    `json:"candidate_id,omitempty"`
	UserID       string   `json:"user_id,omitempty"`
	Availability *int     `json:"availability,omitempty"`
	Comment      *string  `json:"comment,omitempty"`
	Code         int      `json:"code,omitempty"`
	Message      string   `json:"message,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

const (
	StatusOK = "OK"
	StatusNG = "NG"
)

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "服务器内部错误")
}

// ── WebAPI ──

// APIAvailability 出欠更新成功
func APIAvailability(c *gin.Context, scheduleID string, candidateID int64, userID string, availability int) {
	c.JSON(http.StatusOK, APIResult{
		Status:       StatusOK,
		ScheduleID:   scheduleID,
		CandidateID:  candidateID,
		UserID:       userID,
		Availability: &availability,
	})
}

// APIComment 评论更新成功
func APIComment(c *gin.Context, scheduleID, userID, comment string) {
	c.JSON(http.StatusOK, APIResult{
		Status:     StatusOK,
		ScheduleID: scheduleID,
		UserID:     userID,
		Comment:    &comment,
	})
}

// APIError WebAPI 失败响应
func APIError(c *gin.Context, httpStatus int, code int, message string, reasons ...string) {
	c.JSON(httpStatus, APIResult{
		Status:  StatusNG,
		Code:    code,
		Message: message,
		Errors:  reasons,
	})
}
