package model

import (
	"time"

	"github.com/google/uuid"
)

// Ranking carries two unique keys: a respondent may rank a topic once,
// and may use each rank value once. ReplaceForRespondent rewrites the
// whole set inside one transaction so both hold across resubmissions.
type Ranking struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RespondentId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rankings_resp_period_topic,priority:1;uniqueIndex:idx_rankings_resp_period_rank,priority:1"`
	PeriodId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rankings_resp_period_topic,priority:2;uniqueIndex:idx_rankings_resp_period_rank,priority:2"`
	TopicId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rankings_resp_period_topic,priority:3"`
	Rank         int       `gorm:"not null;uniqueIndex:idx_rankings_resp_period_rank,priority:3"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Ranking) TableName() string {
	return "rankings"
}
