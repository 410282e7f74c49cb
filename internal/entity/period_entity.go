// FILE: internal/entity/period_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type PeriodStatus string

const (
	PeriodStatusDraft  PeriodStatus = "draft"
	PeriodStatusOpen   PeriodStatus = "open"
	PeriodStatusClosed PeriodStatus = "closed"
)

// Period is one matching round (e.g. a semester's project intake). All
// questionnaire sessions, answers and rankings hang off exactly one
// period.
type Period struct {
	Id        uuid.UUID
	Name      string
	Status    PeriodStatus
	OpensAt   *time.Time
	ClosesAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AcceptsAnswers reports whether respondents may write in this period.
func (p *Period) AcceptsAnswers() bool {
	return p.Status == PeriodStatusOpen
}
