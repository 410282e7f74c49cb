package dto

import (
	"github.com/google/uuid"
)

// --- Session actions ---

// SetAnswerRequest carries the value for the session's current question.
// Value arrives as JSON bool or number; the kind check happens against the
// question, not here, so a scale answer of 0 and a boolean false both pass.
type SetAnswerRequest struct {
	Value interface{} `json:"value"`
}

type JumpRequest struct {
	QuestionId uuid.UUID `json:"question_id" validate:"required"`
}

// --- Session view ---

type SessionQuestion struct {
	Id       uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	Kind     string    `json:"kind"` // boolean | scale
	ScaleMin *float64  `json:"scale_min,omitempty"`
	ScaleMax *float64  `json:"scale_max,omitempty"`
	Position int       `json:"position"`
}

type SessionItem struct {
	Question  SessionQuestion `json:"question"`
	Value     interface{}     `json:"value"`    // bool, number or null
	Standing  string          `json:"standing"` // absent | pending | failed | persisted
	LastError string          `json:"last_error,omitempty"`
}

type SessionViewResponse struct {
	PeriodId      uuid.UUID     `json:"period_id"`
	Items         []SessionItem `json:"items"`
	Index         int           `json:"index"`
	Current       *SessionItem  `json:"current"`
	TotalCount    int           `json:"total_count"`
	AnsweredCount int           `json:"answered_count"`
	Remaining     int           `json:"remaining"`
	Progress      float64       `json:"progress"`
	IsFirst       bool          `json:"is_first"`
	IsLast        bool          `json:"is_last"`
	IsComplete    bool          `json:"is_complete"`
	IsSubmitting  bool          `json:"is_submitting"`
}

// --- Commit queue payload ---

// CommitAnswerMessage is the work-queue payload for one fire-and-forget
// answer write. The consumer upserts it and acks the live session back.
type CommitAnswerMessage struct {
	RespondentId uuid.UUID `json:"respondent_id"`
	PeriodId     uuid.UUID `json:"period_id"`
	QuestionId   uuid.UUID `json:"question_id"`
	Kind         string    `json:"kind"`
	BoolValue    *bool     `json:"bool_value,omitempty"`
	NumberValue  *float64  `json:"number_value,omitempty"`
}
