package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schedule-arranger/backend/internal/model"
)

// AvailabilityRepository 出欠数据访问接口
type AvailabilityRepository interface {
	Upsert(ctx context.Context, availability *model.Availability) error
	ListBySchedule(ctx context.Context, scheduleID string) ([]model.Availability, error)
	DeleteBySchedule(ctx context.Context, scheduleID string) error
}

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	Upsert(ctx context.Context, comment *model.Comment) error
	ListBySchedule(ctx context.Context, scheduleID string) ([]model.Comment, error)
	DeleteBySchedule(ctx context.Context, scheduleID string) error
}

// ── Availability Repository 实现 ──

type availabilityRepo struct {
	db *gorm.DB
}

func NewAvailabilityRepo(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepo{db: db}
}

// Upsert 以 (candidate_id, user_id) 为冲突键原子写入
// 并发写同一键时由数据库唯一约束保证只有一行
func (r *availabilityRepo) Upsert(ctx context.Context, availability *model.Availability) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"availability", "schedule_id", "updated_at"}),
		}).
		Create(availability).Error
}

// ListBySchedule 按候选升序、写入时间升序返回，并预加载用户
func (r *availabilityRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.Availability, error) {
	var availabilities []model.Availability
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("schedule_id = ?", scheduleID).
		Order("candidate_id ASC, created_at ASC").
		Find(&availabilities).Error
	return availabilities, err
}

func (r *availabilityRepo) DeleteBySchedule(ctx context.Context, scheduleID string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Delete(&model.Availability{}).Error
}

// ── Comment Repository 实现 ──

type commentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Upsert 以 (schedule_id, user_id) 为冲突键原子写入
func (r *commentRepo) Upsert(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "schedule_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"comment", "updated_at"}),
		}).
		Create(comment).Error
}

func (r *commentRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepo) DeleteBySchedule(ctx context.Context, scheduleID string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Delete(&model.Comment{}).Error
}
