// FILE: internal/entity/answer_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Answer is one respondent's stored value for one question in one
// period. At most one row exists per (RespondentId, PeriodId,
// QuestionId); the commit consumer upserts on that key so redelivered
// writes collapse into the same row.
type Answer struct {
	Id           uuid.UUID
	RespondentId uuid.UUID
	PeriodId     uuid.UUID
	QuestionId   uuid.UUID
	Kind         QuestionKind
	BoolValue    *bool
	NumberValue  *float64
	// Submitted flips when the finalization batch lands; individual
	// commits before that leave it false.
	Submitted   bool
	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
