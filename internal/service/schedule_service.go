package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schedule-arranger/backend/internal/dto"
	"schedule-arranger/backend/internal/model"
	"schedule-arranger/backend/internal/repository"
	pkgerrors "schedule-arranger/backend/pkg/errors"
)

// ── 予定模块业务错误 ──

var (
	// ErrScheduleNotFound 予定不存在，或调用方不是所有者（两者对外不可区分）
	ErrScheduleNotFound    = errors.New("予定不存在")
	ErrCandidateNotFound   = errors.New("候选日程不存在")
	ErrForbiddenUser       = errors.New("只能修改自己的出欠与评论")
	ErrInvalidAvailability = errors.New("出欠取值无效")
)

// listTimeLayout 我的予定列表中更新时间的展示格式
const listTimeLayout = "2006/01/02 15:04"

// ScheduleService 予定业务接口
type ScheduleService interface {
	// 创建予定及其候选日程
	Create(ctx context.Context, ownerID string, req *dto.ScheduleRequest) (*dto.ScheduleCreatedResponse, error)
	// 更新名称与备注，并追加新的候选日程（仅所有者）
	Update(ctx context.Context, scheduleID, requesterID string, req *dto.ScheduleRequest) error
	// 级联删除予定（仅所有者）
	Delete(ctx context.Context, scheduleID, requesterID string) error
	// 所有者判定
	IsOwner(ctx context.Context, requesterID, scheduleID string) (bool, error)
	// 编辑表单数据（仅所有者）
	GetForEdit(ctx context.Context, scheduleID, requesterID string) (*dto.ScheduleEditResponse, error)
	// 我创建的予定，按更新时间倒序
	ListMine(ctx context.Context, ownerID string) ([]dto.ScheduleSummary, error)
	// 出欠表视图
	GetView(ctx context.Context, scheduleID string, viewer dto.Identity) (*dto.ScheduleView, error)
}

type scheduleService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
// loc 为列表展示时区，nil 时使用 UTC
func NewScheduleService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	return &scheduleService{repo: repo, loc: loc, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Create
// ════════════════════════════════════════════════════════════

func (s *scheduleService) Create(ctx context.Context, ownerID string, req *dto.ScheduleRequest) (*dto.ScheduleCreatedResponse, error) {
	schedule := &model.Schedule{
		ScheduleID:   uuid.New().String(),
		ScheduleName: normalizeScheduleName(req.ScheduleName),
		Memo:         req.Memo,
		CreatedBy:    ownerID,
	}
	candidates := buildCandidates(schedule.ScheduleID, req.Candidates)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Schedule.Create(ctx, schedule); err != nil {
			return err
		}
		return tx.Candidate.BatchCreate(ctx, candidates)
	})
	if err != nil {
		ctxLogger(ctx, s.logger).Error("创建予定失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	ctxLogger(ctx, s.logger).Info("予定已创建",
		zap.String("schedule_id", schedule.ScheduleID),
		zap.Int("candidates", len(candidates)),
	)
	return &dto.ScheduleCreatedResponse{ScheduleID: schedule.ScheduleID}, nil
}

// ════════════════════════════════════════════════════════════
// Update 覆盖名称与备注；候选日程只追加，不改名、不删除
// ════════════════════════════════════════════════════════════

func (s *scheduleService) Update(ctx context.Context, scheduleID, requesterID string, req *dto.ScheduleRequest) error {
	if _, err := s.getOwned(ctx, scheduleID, requesterID); err != nil {
		return err
	}

	update := &model.Schedule{
		ScheduleID:   scheduleID,
		ScheduleName: normalizeScheduleName(req.ScheduleName),
		Memo:         req.Memo,
		CreatedBy:    requesterID,
	}
	candidates := buildCandidates(scheduleID, req.Candidates)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Schedule.UpdateContent(ctx, update); err != nil {
			return err
		}
		return tx.Candidate.BatchCreate(ctx, candidates)
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNoRowsAffected) {
			return ErrScheduleNotFound
		}
		ctxLogger(ctx, s.logger).Error("更新予定失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return err
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// Delete
// ════════════════════════════════════════════════════════════

func (s *scheduleService) Delete(ctx context.Context, scheduleID, requesterID string) error {
	if _, err := s.getOwned(ctx, scheduleID, requesterID); err != nil {
		return err
	}

	if err := s.repo.DeleteScheduleAggregate(ctx, scheduleID); err != nil {
		ctxLogger(ctx, s.logger).Error("删除予定失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return err
	}

	ctxLogger(ctx, s.logger).Info("予定已删除", zap.String("schedule_id", scheduleID))
	return nil
}

func (s *scheduleService) IsOwner(ctx context.Context, requesterID, scheduleID string) (bool, error) {
	_, err := s.getOwned(ctx, scheduleID, requesterID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrScheduleNotFound) {
		return false, nil
	}
	return false, err
}

func (s *scheduleService) GetForEdit(ctx context.Context, scheduleID, requesterID string) (*dto.ScheduleEditResponse, error) {
	schedule, err := s.getOwned(ctx, scheduleID, requesterID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.Candidate.ListBySchedule(ctx, scheduleID)
	if err != nil {
		ctxLogger(ctx, s.logger).Error("查询候选日程失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.ScheduleEditResponse{
		ScheduleID:   schedule.ScheduleID,
		ScheduleName: schedule.ScheduleName,
		Memo:         schedule.Memo,
		Candidates:   make([]dto.CandidateResponse, 0, len(candidates)),
	}
	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, dto.CandidateResponse{
			CandidateID:   c.CandidateID,
			CandidateName: c.CandidateName,
		})
	}
	return resp, nil
}

func (s *scheduleService) ListMine(ctx context.Context, ownerID string) ([]dto.ScheduleSummary, error) {
	schedules, err := s.repo.Schedule.ListByOwner(ctx, ownerID)
	if err != nil {
		ctxLogger(ctx, s.logger).Error("查询予定列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleSummary, 0, len(schedules))
	for _, sch := range schedules {
		result = append(result, dto.ScheduleSummary{
			ScheduleID:         sch.ScheduleID,
			ScheduleName:       sch.ScheduleName,
			UpdatedAt:          sch.UpdatedAt,
			FormattedUpdatedAt: sch.UpdatedAt.In(s.loc).Format(listTimeLayout),
		})
	}
	return result, nil
}

// ════════════════════════════════════════════════════════════
// GetView
// ════════════════════════════════════════════════════════════

func (s *scheduleService) GetView(ctx context.Context, scheduleID string, viewer dto.Identity) (*dto.ScheduleView, error) {
	schedule, err := s.getSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.Candidate.ListBySchedule(ctx, scheduleID)
	if err != nil {
		ctxLogger(ctx, s.logger).Error("查询候选日程失败", zap.Error(err))
		return nil, err
	}

	availabilities, err := s.repo.Availability.ListBySchedule(ctx, scheduleID)
	if err != nil {
		ctxLogger(ctx, s.logger).Error("查询出欠失败", zap.Error(err))
		return nil, err
	}

	comments, err := s.repo.Comment.ListBySchedule(ctx, scheduleID)
	if err != nil {
		ctxLogger(ctx, s.logger).Error("查询评论失败", zap.Error(err))
		return nil, err
	}

	return BuildScheduleView(schedule, candidates, availabilities, comments, viewer), nil
}

// ── 内部辅助 ──

func (s *scheduleService) getSchedule(ctx context.Context, scheduleID string) (*model.Schedule, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		ctxLogger(ctx, s.logger).Error("查询予定失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

// getOwned 查询予定并校验所有者；非所有者同样返回 ErrScheduleNotFound
func (s *scheduleService) getOwned(ctx context.Context, scheduleID, requesterID string) (*model.Schedule, error) {
	schedule, err := s.getSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if requesterID == "" || schedule.CreatedBy != requesterID {
		return nil, ErrScheduleNotFound
	}
	return schedule, nil
}

func buildCandidates(scheduleID, text string) []model.Candidate {
	names := parseCandidateNames(text)
	candidates := make([]model.Candidate, 0, len(names))
	for _, name := range names {
		candidates = append(candidates, model.Candidate{
			ScheduleID:    scheduleID,
			CandidateName: name,
		})
	}
	return candidates
}
