package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Schedule     ScheduleRepository
	Candidate    CandidateRepository
	Availability AvailabilityRepository
	Comment      CommentRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Schedule:     NewScheduleRepo(db),
		Candidate:    NewCandidateRepo(db),
		Availability: NewAvailabilityRepo(db),
		Comment:      NewCommentRepo(db),
		db:           db,
	}
}

// WithTx 返回绑定到事务连接的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Transaction 在单个事务中执行 fn，fn 返回错误或 panic 时整体回滚
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// DeleteScheduleAggregate 按依赖顺序级联删除予定及其全部从属记录
// 出欠 → 评论 → 候选 → 予定，要么全部删除，要么全部保留；对已删除的予定重复调用不报错
func (r *Repository) DeleteScheduleAggregate(ctx context.Context, scheduleID string) error {
	return r.Transaction(ctx, func(tx *Repository) error {
		if err := tx.Availability.DeleteBySchedule(ctx, scheduleID); err != nil {
			return err
		}
		if err := tx.Comment.DeleteBySchedule(ctx, scheduleID); err != nil {
			return err
		}
		if err := tx.Candidate.DeleteBySchedule(ctx, scheduleID); err != nil {
			return err
		}
		return tx.Schedule.Delete(ctx, scheduleID)
	})
}
