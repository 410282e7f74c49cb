package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByPeriodID struct {
	PeriodID uuid.UUID
}

func (s ByPeriodID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("period_id = ?", s.PeriodID)
}

type ByRespondentID struct {
	RespondentID uuid.UUID
}

func (s ByRespondentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("respondent_id = ?", s.RespondentID)
}

// ByRespondentAndPeriod scopes answer/ranking reads to one session key.
type ByRespondentAndPeriod struct {
	RespondentID uuid.UUID
	PeriodID     uuid.UUID
}

func (s ByRespondentAndPeriod) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("respondent_id = ? AND period_id = ?", s.RespondentID, s.PeriodID)
}

type ByQuestionID struct {
	QuestionID uuid.UUID
}

func (s ByQuestionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("question_id = ?", s.QuestionID)
}

// OrderByPosition keeps questions/topics in display order.
type OrderByPosition struct{}

func (s OrderByPosition) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

type SubmittedOnly struct{}

func (s SubmittedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("submitted = ?", true)
}

type OpenPeriods struct{}

func (s OpenPeriods) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "open")
}

type PublishedTopics struct{}

func (s PublishedTopics) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "published")
}

// OrderByRank keeps a preference list in rank order (1 first).
type OrderByRank struct{}

func (s OrderByRank) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("rank ASC")
}
