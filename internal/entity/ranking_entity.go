// FILE: internal/entity/ranking_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ranking is one row of a respondent's topic preference order: Rank 1
// is the most wanted topic. A full submission covers every published
// topic of the period exactly once, so rank values form a permutation
// of 1..N.
type Ranking struct {
	Id           uuid.UUID
	RespondentId uuid.UUID
	PeriodId     uuid.UUID
	TopicId      uuid.UUID
	Rank         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
