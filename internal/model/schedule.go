package model

// Schedule 予定表 — 对应 schedules
type Schedule struct {
	ScheduleID   string `gorm:"type:varchar(36);primaryKey"     json:"schedule_id"`
	ScheduleName string `gorm:"type:varchar(255);not null"      json:"schedule_name"`
	Memo         string `gorm:"type:text;not null"              json:"memo"`
	CreatedBy    string `gorm:"type:varchar(64);not null;index" json:"created_by"`
	Timestamps

	// 关联
	Owner *User `gorm:"foreignKey:CreatedBy;references:UserID" json:"owner,omitempty"`
}

func (Schedule) TableName() string { return "schedules" }

// Candidate 候选日程表 — 对应 candidates
// CandidateID 自增，其升序即展示顺序
type Candidate struct {
	CandidateID   int64  `gorm:"primaryKey;autoIncrement"        json:"candidate_id"`
	ScheduleID    string `gorm:"type:varchar(36);not null;index" json:"schedule_id"`
	CandidateName string `gorm:"type:text;not null"              json:"candidate_name"`
}

func (Candidate) TableName() string { return "candidates" }

// Availability 出欠表 — 对应 availabilities
// (candidate_id, user_id) 为复合主键，保证同一用户对同一候选只有一条记录
type Availability struct {
	CandidateID  int64             `gorm:"primaryKey;autoIncrement:false"  json:"candidate_id"`
	UserID       string            `gorm:"type:varchar(64);primaryKey"     json:"user_id"`
	ScheduleID   string            `gorm:"type:varchar(36);not null;index" json:"schedule_id"`
	Availability AvailabilityValue `gorm:"type:smallint;not null"          json:"availability"`
	Timestamps

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

func (Availability) TableName() string { return "availabilities" }

// Comment 评论表 — 对应 comments
// (schedule_id, user_id) 为复合主键，每人每个予定一条
type Comment struct {
	ScheduleID string `gorm:"type:varchar(36);primaryKey" json:"schedule_id"`
	UserID     string `gorm:"type:varchar(64);primaryKey" json:"user_id"`
	Comment    string `gorm:"type:varchar(255);not null"  json:"comment"`
	Timestamps
}

func (Comment) TableName() string { return "comments" }
