package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"schedule-arranger/backend/internal/model"
	pkgerrors "schedule-arranger/backend/pkg/errors"
)

// ScheduleRepository 予定数据访问接口
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Schedule, error)
	UpdateContent(ctx context.Context, schedule *model.Schedule) error
	Delete(ctx context.Context, id string) error
}

// CandidateRepository 候选日程数据访问接口
type CandidateRepository interface {
	BatchCreate(ctx context.Context, candidates []model.Candidate) error
	GetByID(ctx context.Context, id int64) (*model.Candidate, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]model.Candidate, error)
	DeleteBySchedule(ctx context.Context, scheduleID string) error
}

// ── Schedule Repository 实现 ──

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("updated_at DESC").
		Find(&schedules).Error
	return schedules, err
}

// UpdateContent 覆盖予定名与备注并刷新 updated_at
// 条件中带 created_by，非所有者或记录已删除时返回 ErrNoRowsAffected
func (r *scheduleRepo) UpdateContent(ctx context.Context, schedule *model.Schedule) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Schedule{}).
		Where("schedule_id = ? AND created_by = ?", schedule.ScheduleID, schedule.CreatedBy).
		Updates(map[string]interface{}{
			"schedule_name": schedule.ScheduleName,
			"memo":          schedule.Memo,
			"updated_at":    now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrNoRowsAffected
	}
	schedule.UpdatedAt = now
	return nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.Schedule{}).Error
}

// ── Candidate Repository 实现 ──

type candidateRepo struct {
	db *gorm.DB
}

func NewCandidateRepo(db *gorm.DB) CandidateRepository {
	return &candidateRepo{db: db}
}

// BatchCreate 按切片顺序批量插入，自增 ID 随之递增
func (r *candidateRepo) BatchCreate(ctx context.Context, candidates []model.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&candidates).Error
}

func (r *candidateRepo) GetByID(ctx context.Context, id int64) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", id).
		First(&candidate).Error
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.Candidate, error) {
	var candidates []model.Candidate
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("candidate_id ASC").
		Find(&candidates).Error
	return candidates, err
}

func (r *candidateRepo) DeleteBySchedule(ctx context.Context, scheduleID string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Delete(&model.Candidate{}).Error
}
