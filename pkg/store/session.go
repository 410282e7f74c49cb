package store

import (
	"fmt"
	"time"

	"topicmatch-be/pkg/questionnaire"

	"github.com/google/uuid"
)

// Session pins a live questionnaire engine in memory between requests.
// The engine carries the merged answer state (snapshot + local edits) and
// the navigation cursor; everything else is derivable from the database.
type Session struct {
	ID           string                 `json:"id"`
	RespondentID uuid.UUID              `json:"respondent_id"`
	PeriodID     uuid.UUID              `json:"period_id"`
	Engine       *questionnaire.Session `json:"-"`

	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `json:"last_activity"`
}

// SessionKey builds the cache key for a respondent's run through a period.
// One respondent gets at most one live engine per period.
func SessionKey(respondentId, periodId uuid.UUID) string {
	return fmt.Sprintf("%s:%s", respondentId, periodId)
}

func NewSession(engine *questionnaire.Session) *Session {
	now := time.Now()
	return &Session{
		ID:           SessionKey(engine.RespondentID(), engine.PeriodID()),
		RespondentID: engine.RespondentID(),
		PeriodID:     engine.PeriodID(),
		Engine:       engine,
		StartedAt:    now,
		LastActivity: now,
	}
}

func (s *Session) Touch() {
	s.LastActivity = time.Now()
}
