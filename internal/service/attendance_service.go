package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"schedule-arranger/backend/internal/dto"
	"schedule-arranger/backend/internal/model"
	"schedule-arranger/backend/internal/repository"
)

// AttendanceService 出欠与评论业务接口
// 调用方只能修改自己（路径中的 userID）的记录，与是否为予定所有者无关
type AttendanceService interface {
	SetAvailability(ctx context.Context, callerID, scheduleID, userID string, candidateID int64, value int) (*dto.AvailabilityResponse, error)
	SetComment(ctx context.Context, callerID, scheduleID, userID, text string) (*dto.CommentResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

func (s *attendanceService) SetAvailability(
	ctx context.Context,
	callerID, scheduleID, userID string,
	candidateID int64,
	value int,
) (*dto.AvailabilityResponse, error) {
	availability := model.AvailabilityValue(value)
	if !availability.Valid() {
		return nil, ErrInvalidAvailability
	}
	if callerID == "" || callerID != userID {
		return nil, ErrForbiddenUser
	}
	if err := s.ensureSchedule(ctx, scheduleID); err != nil {
		return nil, err
	}

	candidate, err := s.repo.Candidate.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		ctxLogger(ctx, s.logger).Error("查询候选日程失败", zap.Int64("candidate_id", candidateID), zap.Error(err))
		return nil, err
	}
	if candidate.ScheduleID != scheduleID {
		return nil, ErrCandidateNotFound
	}

	record := &model.Availability{
		ScheduleID:   scheduleID,
		CandidateID:  candidateID,
		UserID:       userID,
		Availability: availability,
	}
	if err := s.repo.Availability.Upsert(ctx, record); err != nil {
		ctxLogger(ctx, s.logger).Error("写入出欠失败",
			zap.String("schedule_id", scheduleID),
			zap.Int64("candidate_id", candidateID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	return &dto.AvailabilityResponse{
		ScheduleID:   scheduleID,
		CandidateID:  candidateID,
		UserID:       userID,
		Availability: availability,
	}, nil
}

func (s *attendanceService) SetComment(ctx context.Context, callerID, scheduleID, userID, text string) (*dto.CommentResponse, error) {
	if callerID == "" || callerID != userID {
		return nil, ErrForbiddenUser
	}
	if err := s.ensureSchedule(ctx, scheduleID); err != nil {
		return nil, err
	}

	record := &model.Comment{
		ScheduleID: scheduleID,
		UserID:     userID,
		Comment:    truncateRunes(text, maxCommentLength),
	}
	if err := s.repo.Comment.Upsert(ctx, record); err != nil {
		ctxLogger(ctx, s.logger).Error("写入评论失败",
			zap.String("schedule_id", scheduleID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	return &dto.CommentResponse{
		ScheduleID: scheduleID,
		UserID:     userID,
		Comment:    record.Comment,
	}, nil
}

func (s *attendanceService) ensureSchedule(ctx context.Context, scheduleID string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		ctxLogger(ctx, s.logger).Error("查询予定失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return err
	}
	return nil
}
