package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Topic struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PeriodId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_topics_period_position,priority:1"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	Supervisor  string         `gorm:"type:varchar(255)"`
	Capacity    int            `gorm:"default:0"`
	Status      string         `gorm:"type:varchar(50);not null;default:'draft';index"`
	Position    int            `gorm:"not null;index:idx_topics_period_position,priority:2"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Topic) TableName() string {
	return "topics"
}
