package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"schedule-arranger/backend/internal/dto"
	"schedule-arranger/backend/internal/service"
	"schedule-arranger/backend/pkg/response"
)

// SchedulesPath 予定资源的路由前缀，表单提交的重定向目标均在其下
const SchedulesPath = "/api/v1/schedules"

// ScheduleHandler 予定模块 HTTP 处理器
// 创建 / 更新 / 删除同时接受表单与 JSON：表单提交以 302 重定向应答，JSON 以统一响应结构应答
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
	exportSvc   service.ExportService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService, exportSvc service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc, exportSvc: exportSvc}
}

// List 我创建的予定
// GET /api/v1/schedules
func (h *ScheduleHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.scheduleSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Create 创建予定
// POST /api/v1/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ScheduleRequest
	if !h.bindScheduleRequest(c, &req) {
		return
	}

	result, err := h.scheduleSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	if isFormPost(c) {
		c.Redirect(http.StatusFound, SchedulesPath+"/"+result.ScheduleID)
		return
	}
	response.Created(c, result)
}

// Get 出欠表视图
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	var uri dto.ScheduleURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 12001, "参数校验失败", joinReasons(err))
		return
	}
	viewer, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	view, err := h.scheduleSvc.GetView(c.Request.Context(), uri.ScheduleID, viewer)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, view)
}

// Edit 编辑表单数据（仅所有者）
// GET /api/v1/schedules/:id/edit
func (h *ScheduleHandler) Edit(c *gin.Context) {
	var uri dto.ScheduleURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 12001, "参数校验失败", joinReasons(err))
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.GetForEdit(c.Request.Context(), uri.ScheduleID, userID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// Update 更新予定并追加候选日程（仅所有者）
// PUT /api/v1/schedules/:id
// POST /api/v1/schedules/:id/update
func (h *ScheduleHandler) Update(c *gin.Context) {
	var uri dto.ScheduleURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 12001, "参数校验失败", joinReasons(err))
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ScheduleRequest
	if !h.bindScheduleRequest(c, &req) {
		return
	}

	if err := h.scheduleSvc.Update(c.Request.Context(), uri.ScheduleID, userID, &req); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	if isFormPost(c) {
		c.Redirect(http.StatusFound, SchedulesPath+"/"+uri.ScheduleID)
		return
	}
	response.OK(c, gin.H{"schedule_id": uri.ScheduleID})
}

// Delete 级联删除予定（仅所有者）
// DELETE /api/v1/schedules/:id
// POST /api/v1/schedules/:id/delete
func (h *ScheduleHandler) Delete(c *gin.Context) {
	var uri dto.ScheduleURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 12001, "参数校验失败", joinReasons(err))
		return
	}
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), uri.ScheduleID, userID); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	if isFormPost(c) {
		c.Redirect(http.StatusFound, SchedulesPath)
		return
	}
	response.OK(c, nil)
}

// Export 导出出欠表 Excel
// GET /api/v1/schedules/:id/export
func (h *ScheduleHandler) Export(c *gin.Context) {
	var uri dto.ScheduleURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 12001, "参数校验失败", joinReasons(err))
		return
	}
	viewer, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportSchedule(c.Request.Context(), uri.ScheduleID, viewer)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	// 设置下载响应头
	const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}

func (h *ScheduleHandler) bindScheduleRequest(c *gin.Context, req *dto.ScheduleRequest) bool {
	if err := c.ShouldBind(req); err != nil {
		if isBodyTooLarge(err) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 12001, "参数校验失败", joinReasons(err))
		return false
	}
	return true
}

// handleScheduleError 统一处理予定模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 12101, "予定不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 12501, "导出文件生成失败")
	default:
		response.InternalError(c)
	}
}
