package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Periods ---

type CreatePeriodRequest struct {
	Name     string     `json:"name" validate:"required"`
	OpensAt  *time.Time `json:"opens_at"`
	ClosesAt *time.Time `json:"closes_at"`
}

type UpdatePeriodStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft open closed"`
}

type PeriodResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	OpensAt   *time.Time `json:"opens_at"`
	ClosesAt  *time.Time `json:"closes_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// --- Question catalog ---

type CreateQuestionRequest struct {
	Text     string   `json:"text" validate:"required"`
	Kind     string   `json:"kind" validate:"required,oneof=boolean scale"`
	ScaleMin *float64 `json:"scale_min"`
	ScaleMax *float64 `json:"scale_max"`
	Position *int     `json:"position" validate:"omitempty,gte=0"`
}

type UpdateQuestionRequest struct {
	Id       uuid.UUID
	Text     string   `json:"text"`
	ScaleMin *float64 `json:"scale_min"`
	ScaleMax *float64 `json:"scale_max"`
	Position *int     `json:"position" validate:"omitempty,gte=0"`
}

type QuestionResponse struct {
	Id        uuid.UUID `json:"id"`
	PeriodId  uuid.UUID `json:"period_id"`
	Text      string    `json:"text"`
	Kind      string    `json:"kind"`
	ScaleMin  float64   `json:"scale_min"`
	ScaleMax  float64   `json:"scale_max"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Dashboard ---

type PeriodStats struct {
	PeriodId        uuid.UUID `json:"period_id"`
	PeriodName      string    `json:"period_name"`
	Status          string    `json:"status"`
	QuestionCount   int       `json:"question_count"`
	TopicCount      int       `json:"topic_count"`
	RespondentCount int       `json:"respondent_count"`
	SubmittedCount  int       `json:"submitted_count"`
	RankedCount     int       `json:"ranked_count"`
	CompletionRate  float64   `json:"completion_rate"`
}

type AdminDashboardStats struct {
	TotalUsers    int           `json:"total_users"`
	TotalStudents int           `json:"total_students"`
	ActiveUsers   int           `json:"active_users"`
	OpenPeriods   int           `json:"open_periods"`
	Periods       []PeriodStats `json:"periods"`
}

type RespondentProgressResponse struct {
	RespondentId  uuid.UUID  `json:"respondent_id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	StudentNumber *string    `json:"student_number"`
	AnsweredCount int        `json:"answered_count"`
	TotalCount    int        `json:"total_count"`
	Submitted     bool       `json:"submitted"`
	RankedTopics  int        `json:"ranked_topics"`
	LastActivity  *time.Time `json:"last_activity"`
}

// --- System logs ---

// LogListResponse ids are content hashes of the underlying log line, not
// UUIDs.
type LogListResponse struct {
	Id        string    `json:"id"`
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}
