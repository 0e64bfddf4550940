package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"schedule-arranger/backend/internal/model"
	"schedule-arranger/backend/internal/repository"
	pkgerrors "schedule-arranger/backend/pkg/errors"
)

// ── 共享内存存储 ──

type availabilityKey struct {
	candidateID int64
	userID      string
}

type commentKey struct {
	scheduleID string
	userID     string
}

type mockStore struct {
	users          map[string]*model.User
	schedules      map[string]*model.Schedule
	candidates     []model.Candidate
	nextCandidate  int64
	availabilities map[availabilityKey]*model.Availability
	availSeq       map[availabilityKey]int
	comments       map[commentKey]*model.Comment

	now  time.Time
	seq  int
	fail map[string]error // 按操作名注入错误，如 "availability.upsert"
}

func newMockStore() *mockStore {
	return &mockStore{
		users:          make(map[string]*model.User),
		schedules:      make(map[string]*model.Schedule),
		availabilities: make(map[availabilityKey]*model.Availability),
		availSeq:       make(map[availabilityKey]int),
		comments:       make(map[commentKey]*model.Comment),
		now:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		fail:           make(map[string]error),
	}
}

// tick 每次写入推进一分钟，保证更新时间严格递增
func (s *mockStore) tick() time.Time {
	s.now = s.now.Add(time.Minute)
	return s.now
}

func (s *mockStore) toRepository() *repository.Repository {
	return &repository.Repository{
		User:         &mockUserRepo{s},
		Schedule:     &mockScheduleRepo{s},
		Candidate:    &mockCandidateRepo{s},
		Availability: &mockAvailabilityRepo{s},
		Comment:      &mockCommentRepo{s},
	}
}

func (s *mockStore) seedUser(id, name string) {
	s.users[id] = &model.User{UserID: id, Username: name}
}

// ── Mock UserRepository ──

type mockUserRepo struct{ s *mockStore }

func (m *mockUserRepo) Upsert(_ context.Context, user *model.User) error {
	if err := m.s.fail["user.upsert"]; err != nil {
		return err
	}
	u := *user
	m.s.users[user.UserID] = &u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.s.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct{ s *mockStore }

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if err := m.s.fail["schedule.create"]; err != nil {
		return err
	}
	now := m.s.tick()
	schedule.CreatedAt, schedule.UpdatedAt = now, now
	c := *schedule
	m.s.schedules[schedule.ScheduleID] = &c
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if err := m.s.fail["schedule.get"]; err != nil {
		return nil, err
	}
	sch, ok := m.s.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *sch
	if u, ok := m.s.users[sch.CreatedBy]; ok {
		owner := *u
		c.Owner = &owner
	}
	return &c, nil
}

func (m *mockScheduleRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, sch := range m.s.schedules {
		if sch.CreatedBy == ownerID {
			result = append(result, *sch)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (m *mockScheduleRepo) UpdateContent(_ context.Context, schedule *model.Schedule) error {
	if err := m.s.fail["schedule.update"]; err != nil {
		return err
	}
	sch, ok := m.s.schedules[schedule.ScheduleID]
	if !ok || sch.CreatedBy != schedule.CreatedBy {
		return pkgerrors.ErrNoRowsAffected
	}
	sch.ScheduleName = schedule.ScheduleName
	sch.Memo = schedule.Memo
	sch.UpdatedAt = m.s.tick()
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.s.schedules, id)
	return nil
}

// ── Mock CandidateRepository ──

type mockCandidateRepo struct{ s *mockStore }

func (m *mockCandidateRepo) BatchCreate(_ context.Context, candidates []model.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	if err := m.s.fail["candidate.create"]; err != nil {
		return err
	}
	for i := range candidates {
		m.s.nextCandidate++
		candidates[i].CandidateID = m.s.nextCandidate
		m.s.candidates = append(m.s.candidates, candidates[i])
	}
	return nil
}

func (m *mockCandidateRepo) GetByID(_ context.Context, id int64) (*model.Candidate, error) {
	for _, c := range m.s.candidates {
		if c.CandidateID == id {
			cc := c
			return &cc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCandidateRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.Candidate, error) {
	var result []model.Candidate
	for _, c := range m.s.candidates {
		if c.ScheduleID == scheduleID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCandidateRepo) DeleteBySchedule(_ context.Context, scheduleID string) error {
	if err := m.s.fail["candidate.delete"]; err != nil {
		return err
	}
	kept := m.s.candidates[:0]
	for _, c := range m.s.candidates {
		if c.ScheduleID != scheduleID {
			kept = append(kept, c)
		}
	}
	m.s.candidates = kept
	return nil
}

// ── Mock AvailabilityRepository ──
// 以 (candidate_id, user_id) 为键，重复写入覆盖原记录

type mockAvailabilityRepo struct{ s *mockStore }

func (m *mockAvailabilityRepo) Upsert(_ context.Context, a *model.Availability) error {
	if err := m.s.fail["availability.upsert"]; err != nil {
		return err
	}
	key := availabilityKey{a.CandidateID, a.UserID}
	now := m.s.tick()
	if existing, ok := m.s.availabilities[key]; ok {
		existing.Availability = a.Availability
		existing.ScheduleID = a.ScheduleID
		existing.UpdatedAt = now
		return nil
	}
	c := *a
	c.CreatedAt, c.UpdatedAt = now, now
	m.s.availabilities[key] = &c
	m.s.seq++
	m.s.availSeq[key] = m.s.seq
	return nil
}

func (m *mockAvailabilityRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.Availability, error) {
	type row struct {
		a   model.Availability
		seq int
	}
	var rows []row
	for key, a := range m.s.availabilities {
		if a.ScheduleID != scheduleID {
			continue
		}
		c := *a
		if u, ok := m.s.users[a.UserID]; ok {
			uu := *u
			c.User = &uu
		}
		rows = append(rows, row{c, m.s.availSeq[key]})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].a.CandidateID != rows[j].a.CandidateID {
			return rows[i].a.CandidateID < rows[j].a.CandidateID
		}
		return rows[i].seq < rows[j].seq
	})
	result := make([]model.Availability, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.a)
	}
	return result, nil
}

func (m *mockAvailabilityRepo) DeleteBySchedule(_ context.Context, scheduleID string) error {
	for key, a := range m.s.availabilities {
		if a.ScheduleID == scheduleID {
			delete(m.s.availabilities, key)
		}
	}
	return nil
}

// ── Mock CommentRepository ──

type mockCommentRepo struct{ s *mockStore }

func (m *mockCommentRepo) Upsert(_ context.Context, comment *model.Comment) error {
	if err := m.s.fail["comment.upsert"]; err != nil {
		return err
	}
	c := *comment
	m.s.comments[commentKey{comment.ScheduleID, comment.UserID}] = &c
	return nil
}

func (m *mockCommentRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.Comment, error) {
	var result []model.Comment
	for _, c := range m.s.comments {
		if c.ScheduleID == scheduleID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCommentRepo) DeleteBySchedule(_ context.Context, scheduleID string) error {
	for key, c := range m.s.comments {
		if c.ScheduleID == scheduleID {
			delete(m.s.comments, key)
		}
	}
	return nil
}

// ── 计数辅助 ──

func (s *mockStore) countDependents(scheduleID string) (candidates, availabilities, comments int) {
	for _, c := range s.candidates {
		if c.ScheduleID == scheduleID {
			candidates++
		}
	}
	for _, a := range s.availabilities {
		if a.ScheduleID == scheduleID {
			availabilities++
		}
	}
	for _, c := range s.comments {
		if c.ScheduleID == scheduleID {
			comments++
		}
	}
	return
}
