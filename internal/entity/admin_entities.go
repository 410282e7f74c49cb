// FILE: internal/entity/admin_entities.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SystemLog struct {
	Id        uuid.UUID
	Level     string
	Module    string
	Message   string
	Details   map[string]interface{} // JSONB
	CreatedAt time.Time
}

// RespondentProgress is a projection for the admin dashboard: one row
// per student in a period with their questionnaire standing (joined
// data, never persisted as-is).
type RespondentProgress struct {
	RespondentId  uuid.UUID
	Email         string
	FullName      string
	StudentNumber *string
	AnsweredCount int
	TotalCount    int
	Submitted     bool
	RankedTopics  int
	LastActivity  *time.Time
}
