package model

import (
	"time"

	"github.com/google/uuid"
)

// Answer rows are upserted by the commit consumer keyed on the
// respondent/period/question triple, which makes redelivered commits
// land on the same row instead of duplicating it.
type Answer struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RespondentId uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_answers_resp_period_question,priority:1;index:idx_answers_resp_period,priority:1"`
	PeriodId     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_answers_resp_period_question,priority:2;index:idx_answers_resp_period,priority:2"`
	QuestionId   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_answers_resp_period_question,priority:3"`
	Kind         string     `gorm:"type:varchar(20);not null"`
	BoolValue    *bool      `gorm:""`
	NumberValue  *float64   `gorm:""`
	Submitted    bool       `gorm:"default:false;index"`
	SubmittedAt  *time.Time `gorm:""`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (Answer) TableName() string {
	return "answers"
}
