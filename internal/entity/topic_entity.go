// FILE: internal/entity/topic_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type TopicStatus string

const (
	TopicStatusDraft     TopicStatus = "draft"
	TopicStatusPublished TopicStatus = "published"
	TopicStatusArchived  TopicStatus = "archived"
)

// Topic is one project offering students rank within a period.
type Topic struct {
	Id          uuid.UUID
	PeriodId    uuid.UUID
	Title       string
	Description string
	Supervisor  string
	Capacity    int
	Status      TopicStatus
	Position    int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
