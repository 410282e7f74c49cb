package dto

import (
	"time"

	"github.com/google/uuid"
)

type TopicResponse struct {
	Id          uuid.UUID `json:"id"`
	PeriodId    uuid.UUID `json:"period_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Supervisor  string    `json:"supervisor"`
	Capacity    int       `json:"capacity"`
	Status      string    `json:"status"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateTopicRequest struct {
	PeriodId    uuid.UUID `json:"period_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Supervisor  string    `json:"supervisor"`
	Capacity    int       `json:"capacity" validate:"required,min=1"`
	Position    int       `json:"position" validate:"gte=0"`
}

type UpdateTopicRequest struct {
	Id          uuid.UUID
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Supervisor  *string `json:"supervisor"`
	Capacity    *int    `json:"capacity" validate:"omitempty,min=1"`
	Status      string  `json:"status" validate:"omitempty,oneof=draft published archived"`
	Position    *int    `json:"position" validate:"omitempty,gte=0"`
}
