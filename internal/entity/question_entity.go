// FILE: internal/entity/question_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type QuestionKind string

const (
	QuestionKindBoolean QuestionKind = "boolean"
	QuestionKindScale   QuestionKind = "scale"
)

// Question is one catalog item of a period's onboarding questionnaire.
// Position is the display order; ScaleMin/ScaleMax only apply to scale
// questions.
type Question struct {
	Id        uuid.UUID
	PeriodId  uuid.UUID
	Text      string
	Kind      QuestionKind
	ScaleMin  float64
	ScaleMax  float64
	Position  int
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
