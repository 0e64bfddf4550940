package service

import (
	"schedule-arranger/backend/internal/dto"
	"schedule-arranger/backend/internal/model"
)

// BuildScheduleView 将稀疏的出欠记录展开为稠密的出欠表
//
// 参与者顺序：查看者固定在首位，其余用户按出欠记录中首次出现的顺序排列。
// 没有记录的单元格视为欠席（0），仅在视图中补齐，不回写存储。
// 不属于任何参与者的评论不会出现在视图中。
func BuildScheduleView(
	schedule *model.Schedule,
	candidates []model.Candidate,
	availabilities []model.Availability,
	comments []model.Comment,
	viewer dto.Identity,
) *dto.ScheduleView {
	view := &dto.ScheduleView{
		ScheduleID:   schedule.ScheduleID,
		ScheduleName: schedule.ScheduleName,
		Memo:         schedule.Memo,
		CreatedBy:    schedule.CreatedBy,
		OwnerName:    schedule.CreatedBy,
		IsOwner:      schedule.CreatedBy == viewer.UserID,
		UpdatedAt:    schedule.UpdatedAt,
		Candidates:   make([]dto.CandidateResponse, 0, len(candidates)),
	}
	if schedule.Owner != nil {
		view.OwnerName = schedule.Owner.Username
	}

	candidateIndex := make(map[int64]int, len(candidates))
	for i, c := range candidates {
		candidateIndex[c.CandidateID] = i
		view.Candidates = append(view.Candidates, dto.CandidateResponse{
			CandidateID:   c.CandidateID,
			CandidateName: c.CandidateName,
		})
	}

	// ── 参与者 ──
	viewerName := viewer.Username
	if viewerName == "" {
		viewerName = viewer.UserID
	}
	view.Participants = []dto.ParticipantResponse{{
		UserID:   viewer.UserID,
		Username: viewerName,
		IsSelf:   true,
	}}
	participantIndex := map[string]int{viewer.UserID: 0}

	for _, a := range availabilities {
		if _, seen := participantIndex[a.UserID]; seen {
			continue
		}
		name := a.UserID
		if a.User != nil && a.User.Username != "" {
			name = a.User.Username
		}
		participantIndex[a.UserID] = len(view.Participants)
		view.Participants = append(view.Participants, dto.ParticipantResponse{
			UserID:   a.UserID,
			Username: name,
		})
	}

	// ── 稠密矩阵（默认 0）──
	view.Matrix = make([][]model.AvailabilityValue, len(candidates))
	for i := range view.Matrix {
		view.Matrix[i] = make([]model.AvailabilityValue, len(view.Participants))
	}
	for _, a := range availabilities {
		i, ok := candidateIndex[a.CandidateID]
		if !ok {
			continue
		}
		view.Matrix[i][participantIndex[a.UserID]] = a.Availability
	}

	// ── 评论 ──
	view.Comments = make([]string, len(view.Participants))
	for _, c := range comments {
		if j, ok := participantIndex[c.UserID]; ok {
			view.Comments[j] = c.Comment
		}
	}

	return view
}
