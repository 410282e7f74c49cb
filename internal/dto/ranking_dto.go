package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubmitRankingRequest is the full preference order, best first. A valid
// submission lists every published topic of the period exactly once.
type SubmitRankingRequest struct {
	TopicIds []uuid.UUID `json:"topic_ids" validate:"required,min=1"`
}

type RankingEntryResponse struct {
	TopicId    uuid.UUID `json:"topic_id"`
	TopicTitle string    `json:"topic_title"`
	Rank       int       `json:"rank"`
}

type RankingResponse struct {
	PeriodId    uuid.UUID              `json:"period_id"`
	Entries     []RankingEntryResponse `json:"entries"`
	SubmittedAt *time.Time             `json:"submitted_at"`
}
