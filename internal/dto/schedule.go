package dto

import (
	"time"

	"schedule-arranger/backend/internal/model"
)

// ── 予定模块请求 ──

// ScheduleRequest 创建 / 更新予定请求（表单与 JSON 通用）
// Candidates 为换行分隔的候选日程文本；更新时仅追加
type ScheduleRequest struct {
	ScheduleName string `form:"scheduleName" json:"schedule_name"`
	Memo         string `form:"memo"         json:"memo"`
	Candidates   string `form:"candidates"   json:"candidates"`
}

// ScheduleURI 路径参数 /schedules/:id
type ScheduleURI struct {
	ScheduleID string `uri:"id" binding:"required,uuid"`
}

// CommentURI 路径参数 /schedules/:id/users/:user_id/comments
type CommentURI struct {
	ScheduleID string `uri:"id"      binding:"required,uuid"`
	UserID     string `uri:"user_id" binding:"required,max=64"`
}

// AvailabilityURI 路径参数 /schedules/:id/users/:user_id/candidates/:candidate_id
type AvailabilityURI struct {
	ScheduleID  string `uri:"id"           binding:"required,uuid"`
	UserID      string `uri:"user_id"      binding:"required,max=64"`
	CandidateID int64  `uri:"candidate_id" binding:"required,min=1"`
}

// AvailabilityRequest 出欠更新请求体
type AvailabilityRequest struct {
	Availability *int `json:"availability" binding:"required,oneof=0 1 2"`
}

// CommentRequest 评论更新请求体，空字符串表示清空
type CommentRequest struct {
	Comment *string `json:"comment" binding:"required"`
}

// ── 予定模块响应 ──

// ScheduleCreatedResponse 创建成功响应
type ScheduleCreatedResponse struct {
	ScheduleID string `json:"schedule_id"`
}

// ScheduleSummary 我的予定列表项
type ScheduleSummary struct {
	ScheduleID         string    `json:"schedule_id"`
	ScheduleName       string    `json:"schedule_name"`
	UpdatedAt          time.Time `json:"updated_at"`
	FormattedUpdatedAt string    `json:"formatted_updated_at"`
}

// CandidateResponse 候选日程
type CandidateResponse struct {
	CandidateID   int64  `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
}

// ScheduleEditResponse 编辑表单数据
type ScheduleEditResponse struct {
	ScheduleID   string              `json:"schedule_id"`
	ScheduleName string              `json:"schedule_name"`
	Memo         string              `json:"memo"`
	Candidates   []CandidateResponse `json:"candidates"`
}

// ParticipantResponse 出欠表中的一列
type ParticipantResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsSelf   bool   `json:"is_self"`
}

// ScheduleView 出欠表视图
// Matrix[i][j] 为第 i 个候选、第 j 个参与者的出欠；Comments[j] 与 Participants[j] 对齐
type ScheduleView struct {
	ScheduleID   string                      `json:"schedule_id"`
	ScheduleName string                      `json:"schedule_name"`
	Memo         string                      `json:"memo"`
	CreatedBy    string                      `json:"created_by"`
	OwnerName    string                      `json:"owner_name"`
	IsOwner      bool                        `json:"is_owner"`
	UpdatedAt    time.Time                   `json:"updated_at"`
	Candidates   []CandidateResponse         `json:"candidates"`
	Participants []ParticipantResponse       `json:"participants"`
	Matrix       [][]model.AvailabilityValue `json:"matrix"`
	Comments     []string                    `json:"comments"`
}

// Cell 取第 i 个候选、第 j 个参与者的出欠
func (v *ScheduleView) Cell(i, j int) model.AvailabilityValue {
	return v.Matrix[i][j]
}

// AvailabilityResponse 出欠写入结果
type AvailabilityResponse struct {
	ScheduleID   string                  `json:"schedule_id"`
	CandidateID  int64                   `json:"candidate_id"`
	UserID       string                  `json:"user_id"`
	Availability model.AvailabilityValue `json:"availability"`
}

// CommentResponse 评论写入结果
type CommentResponse struct {
	ScheduleID string `json:"schedule_id"`
	UserID     string `json:"user_id"`
	Comment    string `json:"comment"`
}
